package icu

import (
	"golang.org/x/text/language"
)

// FormatEnUS returns a LocaleFormat configured for US English (en-US).
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns a LocaleFormat configured for British English (en-GB).
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02/01/2006", "2 Jan 2006", "2 January 2006", "Monday, 2 January 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
	)
}

// FormatDeDE returns a LocaleFormat configured for German (de-DE).
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02.01.06", "02.01.2006", "2. January 2006", "Monday, 2. January 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
			ShortMonths: [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
			Days:        [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
			ShortDays:   [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
		}),
	)
}

// FormatFrFR returns a LocaleFormat configured for French (fr-FR).
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02/01/2006", "2 Jan 2006", "2 January 2006", "Monday 2 January 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithDateTimeSeparator(" "),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			ShortMonths: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
			Days:        [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
			ShortDays:   [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		}),
	)
}

// FormatEsES returns a LocaleFormat configured for Spanish (es-ES).
func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02/01/06", "2 Jan 2006", "2 de January de 2006", "Monday, 2 de January de 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
			ShortMonths: [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
			Days:        [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
			ShortDays:   [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
		}),
	)
}

// FormatPtBR returns a LocaleFormat configured for Brazilian Portuguese (pt-BR).
func FormatPtBR() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02/01/2006", "2 de Jan de 2006", "2 de January de 2006", "Monday, 2 de January de 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithDateTimeSeparator(" "),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
			ShortMonths: [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
			Days:        [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
			ShortDays:   [7]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."},
		}),
	)
}

// FormatJaJP returns a LocaleFormat configured for Japanese (ja-JP).
func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("2006/01/02", "2006/01/02", "2006年1月2日", "2006年1月2日Monday"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15時04分05秒 MST"),
		WithDateTimeSeparator(" "),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
			ShortMonths: [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
			Days:        [7]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"},
			ShortDays:   [7]string{"日", "月", "火", "水", "木", "金", "土"},
		}),
	)
}

// FormatZhCN returns a LocaleFormat configured for Simplified Chinese (zh-CN).
func FormatZhCN() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("2006-01-02", "2006年1月2日", "2006年1月2日", "2006年1月2日Monday"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithDateTimeSeparator(" "),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"一月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "十一月", "十二月"},
			ShortMonths: [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
			Days:        [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
			ShortDays:   [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"},
		}),
	)
}

// FormatKoKR returns a LocaleFormat configured for Korean (ko-KR).
func FormatKoKR() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("2006. 1. 2.", "2006. 1. 2.", "2006년 1월 2일", "2006년 1월 2일 Monday"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithDateTimeSeparator(" "),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
			ShortMonths: [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
			Days:        [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"},
			ShortDays:   [7]string{"일", "월", "화", "수", "목", "금", "토"},
		}),
	)
}

// FormatPlPL returns a LocaleFormat configured for Polish (pl-PL).
func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02.01.2006", "2 Jan 2006", "2 January 2006", "Monday, 2 January 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithDateTimeSeparator(" "),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca", "lipca", "sierpnia", "września", "października", "listopada", "grudnia"},
			ShortMonths: [12]string{"sty", "lut", "mar", "kwi", "maj", "cze", "lip", "sie", "wrz", "paź", "lis", "gru"},
			Days:        [7]string{"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota"},
			ShortDays:   [7]string{"niedz.", "pon.", "wt.", "śr.", "czw.", "pt.", "sob."},
		}),
	)
}

// FormatRuRU returns a LocaleFormat configured for Russian (ru-RU).
func FormatRuRU() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02.01.2006", "2 Jan 2006 г.", "2 January 2006 г.", "Monday, 2 January 2006 г."),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
			ShortMonths: [12]string{"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."},
			Days:        [7]string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
			ShortDays:   [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
		}),
	)
}

// FormatArSA returns a LocaleFormat configured for Arabic (ar-SA).
func FormatArSA() *LocaleFormat {
	return NewLocaleFormat(
		WithDateLayouts("02/01/2006", "02/01/2006", "2 January 2006", "Monday، 2 January 2006"),
		WithTimeLayouts("3:04 PM", "3:04:05 PM", "3:04:05 PM MST", "3:04:05 PM MST"),
		WithDateTimeSeparator(" "),
		WithCurrencyPosition(CurrencyAfter),
		WithCalendarNames(CalendarNames{
			Months:      [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
			ShortMonths: [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
			Days:        [7]string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
			ShortDays:   [7]string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
		}),
	)
}

var predefinedFormats = map[string]func() *LocaleFormat{
	"en":    FormatEnUS,
	"en-US": FormatEnUS,
	"en-GB": FormatEnGB,
	"de":    FormatDeDE,
	"de-DE": FormatDeDE,
	"fr":    FormatFrFR,
	"fr-FR": FormatFrFR,
	"es":    FormatEsES,
	"es-ES": FormatEsES,
	"pt":    FormatPtBR,
	"pt-BR": FormatPtBR,
	"ja":    FormatJaJP,
	"ja-JP": FormatJaJP,
	"zh":    FormatZhCN,
	"zh-CN": FormatZhCN,
	"ko":    FormatKoKR,
	"ko-KR": FormatKoKR,
	"pl":    FormatPlPL,
	"pl-PL": FormatPlPL,
	"ru":    FormatRuRU,
	"ru-RU": FormatRuRU,
	"ar":    FormatArSA,
	"ar-SA": FormatArSA,
}

// LookupLocaleFormat returns the predefined LocaleFormat for tag, trying the
// full tag, then language-region, then the base language.
func LookupLocaleFormat(tag language.Tag) (*LocaleFormat, bool) {
	if fn, ok := predefinedFormats[tag.String()]; ok {
		return fn(), true
	}
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		if fn, ok := predefinedFormats[base.String()+"-"+region.String()]; ok {
			return fn(), true
		}
	}
	if fn, ok := predefinedFormats[base.String()]; ok {
		return fn(), true
	}
	return nil, false
}
