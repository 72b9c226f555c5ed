package quotes

import (
	"math/rand"
	"strings"
)

// Quote pairs a teaching with its scripture reference.
type Quote struct {
	Text      string
	Reference string
}

// String renders the quote the way it appears in quote files and overlays.
func (q Quote) String() string {
	if q.Reference == "" {
		return q.Text
	}
	return q.Text + " - " + q.Reference
}

// teachings is the built-in catalog of quotes from the Gospels.
var teachings = []Quote{
	// The Beatitudes (Matthew 5:3-12)
	{"Blessed are the poor in spirit, for theirs is the kingdom of heaven.", "Matthew 5:3"},
	{"Blessed are those who mourn, for they will be comforted.", "Matthew 5:4"},
	{"Blessed are the meek, for they will inherit the earth.", "Matthew 5:5"},
	{"Blessed are those who hunger and thirst for righteousness, for they will be filled.", "Matthew 5:6"},
	{"Blessed are the merciful, for they will be shown mercy.", "Matthew 5:7"},
	{"Blessed are the pure in heart, for they will see God.", "Matthew 5:8"},
	{"Blessed are the peacemakers, for they will be called children of God.", "Matthew 5:9"},

	// The great commandments
	{"Love the Lord your God with all your heart and with all your soul and with all your mind.", "Matthew 22:37"},
	{"Love your neighbor as yourself.", "Matthew 22:39"},

	// The "I am" statements
	{"I am the way and the truth and the life. No one comes to the Father except through me.", "John 14:6"},
	{"I am the light of the world. Whoever follows me will never walk in darkness, but will have the light of life.", "John 8:12"},
	{"I am the resurrection and the life. The one who believes in me will live, even though they die.", "John 11:25"},
	{"I am the good shepherd. The good shepherd lays down his life for the sheep.", "John 10:11"},
	{"I am the bread of life. Whoever comes to me will never go hungry.", "John 6:35"},

	// On love and forgiveness
	{"Love your enemies and pray for those who persecute you.", "Matthew 5:44"},
	{"If you forgive other people when they sin against you, your heavenly Father will also forgive you.", "Matthew 6:14"},
	{"Do to others as you would have them do to you.", "Luke 6:31"},
	{"Let him who is without sin cast the first stone.", "John 8:7"},

	// On faith and prayer
	{"Ask and it will be given to you; seek and you will find; knock and the door will be opened to you.", "Matthew 7:7"},
	{"If you believe, you will receive whatever you ask for in prayer.", "Matthew 21:22"},
	{"Have faith in God. Truly I tell you, if you have faith as small as a mustard seed, you can move mountains.", "Matthew 17:20"},
	{"Come to me, all you who are weary and burdened, and I will give you rest.", "Matthew 11:28"},

	// On humility and service
	{"Whoever wants to become great among you must be your servant.", "Matthew 20:26"},
	{"The greatest among you will be your servant. For those who exalt themselves will be humbled.", "Matthew 23:11-12"},
	{"Let the little children come to me, and do not hinder them, for the kingdom of heaven belongs to such as these.", "Matthew 19:14"},

	// On worry and trust
	{"Do not worry about tomorrow, for tomorrow will worry about itself.", "Matthew 6:34"},
	{"Look at the birds of the air; they do not sow or reap or store away in barns, and yet your heavenly Father feeds them.", "Matthew 6:26"},
	{"Peace I leave with you; my peace I give you. Do not let your hearts be troubled and do not be afraid.", "John 14:27"},

	// On the kingdom of God
	{"The kingdom of God is within you.", "Luke 17:21"},
	{"Seek first the kingdom of God and his righteousness, and all these things will be given to you.", "Matthew 6:33"},
	{"Unless you change and become like little children, you will never enter the kingdom of heaven.", "Matthew 18:3"},

	// On truth and light
	{"You are the light of the world. A town built on a hill cannot be hidden.", "Matthew 5:14"},
	{"Let your light shine before others, that they may see your good deeds and glorify your Father in heaven.", "Matthew 5:16"},
	{"The truth will set you free.", "John 8:32"},

	// The Lord's Prayer
	{"Our Father in heaven, hallowed be your name, your kingdom come, your will be done, on earth as it is in heaven.", "Matthew 6:9-10"},

	// Parables
	{"I am the vine; you are the branches. If you remain in me and I in you, you will bear much fruit.", "John 15:5"},
	{"A good tree cannot bear bad fruit, and a bad tree cannot bear good fruit.", "Matthew 7:18"},

	// On following
	{"If anyone would come after me, let him deny himself and take up his cross and follow me.", "Matthew 16:24"},
	{"No one can serve two masters. Either you will hate the one and love the other.", "Matthew 6:24"},
	{"What good is it for someone to gain the whole world, yet forfeit their soul?", "Mark 8:36"},

	// Final commands
	{"Go and make disciples of all nations, baptizing them in the name of the Father and of the Son and of the Holy Spirit.", "Matthew 28:19"},
	{"Peace be with you! As the Father has sent me, I am sending you.", "John 20:21"},
}

// curatedThemes are the labels surfaced by Themes, in display order.
var curatedThemes = []string{
	"love",
	"faith",
	"peace",
	"forgive",
	"kingdom",
	"light",
	"prayer",
	"servant",
}

// All returns a copy of the full catalog.
func All() []Quote {
	cp := make([]Quote, len(teachings))
	copy(cp, teachings)
	return cp
}

// Count returns the catalog size.
func Count() int {
	return len(teachings)
}

// Random returns a random quote from the catalog.
func Random() Quote {
	return teachings[rand.Intn(len(teachings))]
}

// Sample returns up to n distinct random quotes from the catalog.
func Sample(n int) []Quote {
	if n <= 0 {
		return nil
	}
	if n > len(teachings) {
		n = len(teachings)
	}
	perm := rand.Perm(len(teachings))
	out := make([]Quote, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, teachings[idx])
	}
	return out
}

// Beatitudes returns the seven "Blessed are" verses.
func Beatitudes() []Quote {
	return filter(func(q Quote) bool {
		return strings.Contains(q.Text, "Blessed are")
	})
}

// Sayings returns the "I am" statements.
func Sayings() []Quote {
	return filter(func(q Quote) bool {
		return strings.Contains(q.Text, "I am")
	})
}

// ByTheme returns quotes whose rendered text contains the theme keyword,
// case-insensitively.
func ByTheme(theme string) []Quote {
	needle := strings.ToLower(strings.TrimSpace(theme))
	if needle == "" {
		return nil
	}
	return filter(func(q Quote) bool {
		return strings.Contains(strings.ToLower(q.String()), needle)
	})
}

// ThemeCount describes a curated theme label and how many quotes match it.
type ThemeCount struct {
	Theme string
	Count int
}

// Themes returns the curated theme labels with their match counts.
func Themes() []ThemeCount {
	counts := make([]ThemeCount, 0, len(curatedThemes))
	for _, theme := range curatedThemes {
		counts = append(counts, ThemeCount{Theme: theme, Count: len(ByTheme(theme))})
	}
	return counts
}

func filter(keep func(Quote) bool) []Quote {
	var out []Quote
	for _, q := range teachings {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
