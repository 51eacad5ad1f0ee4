package storage

import (
	"fmt"
	"math/rand/v2"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"image-gallery-api/config"
)

const maxFileNameLen = 100

var (
	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
	fileSafeRe = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)
)

// Generator derives new storage filenames from the current time, a
// bounded random integer and the extension of the original upload name.
// Uniqueness under concurrent calls is probabilistic: millisecond
// timestamp resolution plus a random value below the configured limit.
// Generate is a total function; it has no error conditions.
type Generator struct {
	format   string
	tsLayout string
	loc      *time.Location
	limit    int
	unknown  string

	now     func() time.Time
	randInt func(n int) int
}

func NewGenerator(cfg config.Upload) (*Generator, error) {
	loc, err := time.LoadLocation(cfg.TimestampTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid upload timestamp timezone %q: %w", cfg.TimestampTZ, err)
	}

	return &Generator{
		format:   cfg.FilenameFormat,
		tsLayout: cfg.TimestampFormat,
		loc:      loc,
		limit:    cfg.RandomizerLimit,
		unknown:  cfg.UnknownFilename,
		now:      time.Now,
		randInt:  rand.IntN,
	}, nil
}

// Generate produces a new filename combining a timestamp, a random
// integer and the lowercased extension of originalFilename. Directory
// components of the original name are ignored; only the base name's
// extension survives. An absent original name falls back to the
// configured placeholder, and a name without an extension yields a
// generated name without one.
func (g *Generator) Generate(originalFilename string) string {
	if originalFilename == "" {
		originalFilename = g.unknown
	}
	ext := strings.ToLower(path.Ext(baseName(originalFilename)))

	ts := g.now().In(g.loc).Format(g.tsLayout)

	return fmt.Sprintf(g.format, ts, g.randInt(g.limit), ext)
}

// DisplayName returns the sanitized base of originalFilename, falling
// back to the configured placeholder when nothing usable remains. This
// is the name recorded on the image and offered back on download.
func (g *Generator) DisplayName(originalFilename string) string {
	if s := SanitizeFileName(originalFilename); s != "" {
		return s
	}
	return g.unknown
}

// baseName strips directory components, accepting both separator
// conventions found in client-supplied names.
func baseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return path.Base(name)
}

// SanitizeFileName reduces a client-supplied filename to a safe base
// name: directory components stripped, combining marks and control
// characters removed, unsafe runes replaced, length capped. Case and
// extension are preserved so the recorded name still resembles what the
// user uploaded.
func SanitizeFileName(original string) string {
	s := strings.TrimSpace(baseName(original))
	if s == "" || s == "." || s == ".." || s == "/" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, s)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = fileSafeRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "- ")
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return ""
	}

	ext := path.Ext(s)
	base := strings.TrimSuffix(s, ext)
	if _, bad := windowsReserved[strings.ToLower(base)]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
