// Package i18n binds message catalogs to a locale and renders translated
// messages for server-side rendering.
//
// A [Translator] resolves dotted keys in a [messages.Catalog] and formats
// the ICU MessageFormat strings it finds with the locale's plural, number
// and date rules:
//
//	tr, err := i18n.NewTranslator(i18n.Config{
//		Locale:         "de-AT",
//		Messages:       catalog,
//		Namespace:      "Cart",
//		FallbackLocale: "en",
//	})
//	if err != nil {
//		return err
//	}
//	tr.T("summary", i18n.M{"count": 3}) // "3 Artikel im Warenkorb"
//
// Lookup tries the requested locale, its base language and the fallback
// locale, in that order.
//
// # Output Variants
//
//   - T returns plain text; rich tag nodes are converted to strings.
//   - Rich returns icu.Parts so tags can produce nodes (see Component).
//   - Markup returns HTML built by icu.MarkupTag functions, optionally
//     sanitized by Config.MarkupPolicy.
//   - Raw returns the unformatted catalog value.
//   - Has checks for a key without reporting anything.
//
// # Errors
//
// Rendering never fails from the caller's point of view. Each failure is
// wrapped in an [Error] with a [Code] (MISSING_MESSAGE, MISSING_VALUE,
// INVALID_MESSAGE, FORMATTING_ERROR, ENVIRONMENT_FALLBACK, INVALID_KEY),
// passed to Config.OnError and replaced by Config.GetMessageFallback, which
// defaults to the dotted namespace.key path.
//
// # Request Scope
//
// [Middleware] installs a [RequestCache] in every request context. Handlers
// then obtain translators with [GetTranslations] or
// [GetTranslationsWithOptions]; within one request the same (locale,
// namespace) pair always yields the same Translator and each locale's
// config is loaded once through the [ConfigLoader]:
//
//	r.Use(i18n.Middleware(loader))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ctx := i18n.WithLocale(r.Context(), chi.URLParam(r, "locale"))
//		tr, err := i18n.GetTranslations(ctx, "About")
//		...
//	}
//
// Caches are never shared between requests. [LocaleAttr] and
// [RequestCacheAttr] add the request's locale and cache ID to log records.
package i18n
