package casc

import "strings"

// LocaleFlags is the bitmask on a root-index block selecting which game
// client locales its entries apply to.
type LocaleFlags uint32

const (
	LocaleEnUS LocaleFlags = 0x2
	LocaleKoKR LocaleFlags = 0x4
	LocaleFrFR LocaleFlags = 0x10
	LocaleDeDE LocaleFlags = 0x20
	LocaleZhCN LocaleFlags = 0x40
	LocaleEsES LocaleFlags = 0x80
	LocaleZhTW LocaleFlags = 0x100
	LocaleEnGB LocaleFlags = 0x200
	LocaleEsMX LocaleFlags = 0x1000
	LocaleRuRU LocaleFlags = 0x2000
	LocalePtBR LocaleFlags = 0x4000
	LocaleItIT LocaleFlags = 0x8000
	LocalePtPT LocaleFlags = 0x10000

	// LocaleAll marks an entry valid for every locale.
	LocaleAll LocaleFlags = 0xFFFFFFFF
)

var localeNames = map[string]LocaleFlags{
	"enus": LocaleEnUS,
	"kokr": LocaleKoKR,
	"frfr": LocaleFrFR,
	"dede": LocaleDeDE,
	"zhcn": LocaleZhCN,
	"eses": LocaleEsES,
	"zhtw": LocaleZhTW,
	"engb": LocaleEnGB,
	"esmx": LocaleEsMX,
	"ruru": LocaleRuRU,
	"ptbr": LocalePtBR,
	"itit": LocaleItIT,
	"ptpt": LocalePtPT,
	"all":  LocaleAll,
}

// ParseLocale resolves a locale name like "enUS" to its flag. Unknown
// names resolve to enUS.
func ParseLocale(name string) LocaleFlags {
	if f, ok := localeNames[strings.ToLower(name)]; ok {
		return f
	}
	return LocaleEnUS
}

// Matches reports whether a block with these flags applies to the
// requested locale.
func (f LocaleFlags) Matches(requested LocaleFlags) bool {
	return f == LocaleAll || f&requested != 0
}

// ContentFlags is the bitmask on a root-index entry selecting content
// variants.
type ContentFlags uint32

const (
	ContentInstall     ContentFlags = 0x4
	ContentLowViolence ContentFlags = 0x80
	ContentDoNotLoad   ContentFlags = 0x100
	ContentBundle      ContentFlags = 0x40000000
	ContentNoNames     ContentFlags = 0x10000000
	ContentEncrypted   ContentFlags = 0x8000000
)
