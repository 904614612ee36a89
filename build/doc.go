// Package build generates a site from a project directory.
//
// A project holds markdown sources in contents/ and one or more templates
// in templates/<name>/. [Generator.Generate] loads the template, runs its
// plugins, converts every source, and writes each configured output into
// output/.
package build
