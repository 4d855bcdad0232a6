package faker

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mockario/mockario/pkg/value"
)

// Generator names.
const (
	MethodName      = "name"
	MethodFirstName = "firstName"
	MethodLastName  = "lastName"
	MethodEmail     = "email"
	MethodPhone     = "phone"
	MethodUUID      = "uuid"
	MethodBoolean   = "boolean"
	MethodNumber    = "number"
	MethodDate      = "date"
	MethodWord      = "word"
	MethodSentence  = "sentence"
	MethodParagraph = "paragraph"
	MethodCity      = "city"
	MethodCountry   = "country"
	MethodStreet    = "street"
	MethodURL       = "url"
	MethodAvatar    = "avatar"
	MethodCompany   = "company"
)

// DateFormat is the layout of generated dates: UTC ISO-8601 with milliseconds.
const DateFormat = "2006-01-02T15:04:05.000Z"

// recentWindow bounds how far in the past a generated date may fall.
const recentWindow = 24 * time.Hour

type generator func(f *Faker) value.Value

// methodOrder lists generators in the order Methods reports them.
var methodOrder = []string{
	MethodName, MethodFirstName, MethodLastName, MethodEmail, MethodPhone,
	MethodUUID, MethodBoolean, MethodNumber, MethodDate, MethodWord,
	MethodSentence, MethodParagraph, MethodCity, MethodCountry,
	MethodStreet, MethodURL, MethodAvatar, MethodCompany,
}

var generators = map[string]generator{
	MethodName: func(f *Faker) value.Value {
		return value.String(f.pick(firstNames) + " " + f.pick(lastNames))
	},
	MethodFirstName: func(f *Faker) value.Value { return value.String(f.pick(firstNames)) },
	MethodLastName:  func(f *Faker) value.Value { return value.String(f.pick(lastNames)) },
	MethodEmail: func(f *Faker) value.Value {
		local := strings.ToLower(f.pick(firstNames) + "." + f.pick(lastNames))
		if f.intN(2) == 0 {
			local += strconv.Itoa(f.intN(100))
		}
		return value.String(local + "@" + f.pick(emailDomains))
	},
	MethodPhone: func(f *Faker) value.Value {
		return value.String(fmt.Sprintf("+1-%03d-%03d-%04d", f.intN(800)+200, f.intN(900)+100, f.intN(10000)))
	},
	MethodUUID:    func(f *Faker) value.Value { return value.String(f.uuid()) },
	MethodBoolean: func(f *Faker) value.Value { return value.Bool(f.intN(2) == 1) },
	MethodNumber:  func(f *Faker) value.Value { return value.Int(int64(f.intN(1000) + 1)) },
	MethodDate: func(f *Faker) value.Value {
		back := time.Duration(f.int64N(int64(recentWindow)))
		return value.String(f.now().Add(-back).UTC().Format(DateFormat))
	},
	MethodWord:      func(f *Faker) value.Value { return value.String(f.pick(loremWords)) },
	MethodSentence:  func(f *Faker) value.Value { return value.String(f.sentence()) },
	MethodParagraph: func(f *Faker) value.Value { return value.String(f.paragraph()) },
	MethodCity:      func(f *Faker) value.Value { return value.String(f.pick(cities)) },
	MethodCountry:   func(f *Faker) value.Value { return value.String(f.pick(countries)) },
	MethodStreet: func(f *Faker) value.Value {
		return value.String(fmt.Sprintf("%d %s %s", f.intN(9899)+100, f.pick(streetNames), f.pick(streetSuffixes)))
	},
	MethodURL: func(f *Faker) value.Value {
		return value.String("https://" + f.pick(loremWords) + "-" + f.pick(loremWords) + "." + f.pick(topLevelDomains) + "/")
	},
	MethodAvatar: func(f *Faker) value.Value {
		return value.String("https://avatars.githubusercontent.com/u/" + strconv.Itoa(f.intN(99999999)+1))
	},
	MethodCompany: func(f *Faker) value.Value {
		if f.intN(3) == 0 {
			return value.String(f.pick(lastNames) + ", " + f.pick(lastNames) + " and " + f.pick(lastNames))
		}
		return value.String(f.pick(lastNames) + " " + f.pick(companySuffixes))
	},
}

// Methods returns the names of all generators.
func Methods() []string {
	return append([]string(nil), methodOrder...)
}

// IsMethod reports whether name is a known generator.
func IsMethod(name string) bool {
	_, ok := generators[name]
	return ok
}

// Faker produces fake values. The zero value is not usable; use New.
// A Faker is safe for concurrent use.
type Faker struct {
	mu    sync.Mutex
	rng   *mathrand.Rand
	clock func() time.Time
}

// Option configures a Faker.
type Option func(*Faker)

// WithSeed makes the Faker deterministic.
func WithSeed(seed uint64) Option {
	return func(f *Faker) {
		f.rng = mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock sets the time source used for dates.
func WithClock(now func() time.Time) Option {
	return func(f *Faker) {
		if now != nil {
			f.clock = now
		}
	}
}

// New creates a Faker. Without WithSeed it draws from the global
// math/rand/v2 source and crypto-random UUIDs.
func New(opts ...Option) *Faker {
	f := &Faker{clock: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Generate invokes the named generator. It reports false for unknown names.
func (f *Faker) Generate(method string) (value.Value, bool) {
	gen, ok := generators[method]
	if !ok {
		return value.Value{}, false
	}
	if f.rng != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	return gen(f), true
}

// MustGenerate is Generate for names known to exist.
func (f *Faker) MustGenerate(method string) value.Value {
	v, ok := f.Generate(method)
	if !ok {
		panic("faker: unknown method " + strconv.Quote(method))
	}
	return v
}

// Pick returns one of options at random.
func (f *Faker) Pick(options []value.Value) value.Value {
	if len(options) == 0 {
		return value.Null()
	}
	if f.rng != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	return options[f.intN(len(options))]
}

func (f *Faker) now() time.Time { return f.clock() }

func (f *Faker) intN(n int) int {
	if n <= 0 {
		return 0
	}
	if f.rng != nil {
		return f.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

func (f *Faker) int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	if f.rng != nil {
		return f.rng.Int64N(n)
	}
	return mathrand.Int64N(n)
}

func (f *Faker) pick(list []string) string {
	return list[f.intN(len(list))]
}

// uuid returns a v4 UUID. Seeded fakers derive the bytes from their PRNG.
func (f *Faker) uuid() string {
	if f.rng == nil {
		return uuid.NewString()
	}
	var u uuid.UUID
	for i := range u {
		u[i] = byte(f.rng.IntN(256))
	}
	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80
	return u.String()
}

func (f *Faker) sentence() string {
	n := f.intN(8) + 3
	words := make([]string, n)
	for i := range words {
		words[i] = f.pick(loremWords)
	}
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ") + "."
}

func (f *Faker) paragraph() string {
	n := f.intN(4) + 3
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = f.sentence()
	}
	return strings.Join(sentences, " ")
}
