// Package messages holds message catalogs and resolves dotted keys against them.
//
// A catalog maps locales to message trees. A tree is built from [Node] values,
// each of which is either a leaf carrying one message string or a branch of
// named children:
//
//	tree, _ := messages.FromMap(map[string]any{
//		"About": map[string]any{
//			"title": "About us",
//		},
//	})
//	catalog := messages.NewCatalog(map[string]*messages.Node{"en": tree})
//
//	title, _ := messages.ResolveMessage(tree, "About.title", messages.DefaultDelimiter)
//	// title == "About us"
//
// # Lookup Order
//
// [Catalog.Lookup] walks a list of locales; [Chain] builds the usual order of
// requested locale, its base language and a fallback locale:
//
//	node, locale, err := catalog.Lookup(messages.Chain("de-AT", "en"), "About.title", ".")
//
// # Sources
//
// Catalogs are assembled by [Load] from one or more [Source] implementations,
// which are read concurrently and merged in order:
//
//   - [FSSource] for JSON/YAML files in an fs.FS ({locale}.json or {locale}/{ns}.json)
//   - [RedisSource] for JSON trees stored under {prefix}{locale}
//   - [PostgresSource] for flat (locale, key, message) rows
//   - [S3Source] for catalog files kept in object storage
//
// A loaded catalog is immutable and may be shared by concurrent requests.
package messages
