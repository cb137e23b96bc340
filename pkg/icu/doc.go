// Package icu parses and renders ICU MessageFormat strings.
//
// A message is parsed once into an immutable [Message] descriptor and can
// then be rendered any number of times with different values:
//
//	msg, err := icu.Parse("Hello {name}, you have {count, plural, one {# message} other {# messages}}")
//	if err != nil {
//		return err
//	}
//	out, err := msg.Format(icu.Values{"name": "Ana", "count": 5}, icu.Options{Locale: locale})
//	// out == "Hello Ana, you have 5 messages"
//
// # Syntax
//
// Supported argument forms:
//
//	{name}
//	{name, number}            {name, number, integer|percent|currency|::skeleton|named}
//	{name, date}              {name, date, short|medium|long|full|named}
//	{name, time}              {name, time, short|medium|long|full|named}
//	{name, plural, offset:1 =0 {none} one {# item} other {# items}}
//	{name, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}
//	{name, select, female {she} male {he} other {they}}
//	<b>bold</b>  <br/>
//
// Apostrophes quote syntax characters: '{' renders a literal brace and a
// doubled apostrophe renders one apostrophe.
//
// # Rendering Modes
//
//   - [Message.Format] produces plain text.
//   - [Message.FormatMarkup] requires tags to be bound to [MarkupTag] functions.
//   - [Message.FormatRich] returns [Parts] in which [RichTag] results stay nodes.
//
// # Locales
//
// Plural categories and number formatting come from CLDR data in
// golang.org/x/text. Date and time layouts, month names and currency
// placement come from [LocaleFormat]. [NewLocale] never fails hard: an
// unknown locale degrades to en-US rules and reports ErrUnsupportedLocale.
package icu
