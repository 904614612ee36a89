// Package plugin extends a build with optional hooks.
//
// A [Plugin] takes part in a build by implementing any of [BeforeBuilder],
// [AfterBuilder], [PageTransformer], [HTMLTransformer],
// [MarkdownPreprocessor] and [HTMLPostprocessor]. The [Manager] loads the
// plugins a template enables, creating each from its [Registry] factory,
// and runs their hooks in load order.
//
// The built-in plugins are:
//
//	sitemap       sitemap.xml
//	rss           feed.xml
//	search        search-index.json
//	analytics     tracking snippet before </head>
//	reading-time  "N min read" after the first </h1>
//	robots        robots.txt
package plugin
