package moderation

// Settings is the per-group moderation record. Absence of a record means
// every filter is off. Mutated only through storage.UpdateGroupSettings so
// each change hits disk.
type Settings struct {
	Antilink     bool `json:"antilink"`
	AntilinkWarn bool `json:"antilink_warn"` // warn without deleting
	Antibot      bool `json:"antibot"`
	Antimention  bool `json:"antimention"`
	Antimedia    bool `json:"antimedia"`
	Antisticker  bool `json:"antisticker"`
	Antinsfw     bool `json:"antinsfw"`
	Antibad      bool `json:"antibad"`
	Antimenu     bool `json:"antimenu"`

	BannedWords []string `json:"banned_words,omitempty"`
}

// AnyActive reports whether at least one filter is switched on.
func (s *Settings) AnyActive() bool {
	if s == nil {
		return false
	}
	return s.Antilink || s.Antibot || s.Antimention || s.Antimedia ||
		s.Antisticker || s.Antinsfw || s.Antibad || s.Antimenu
}

// builtinProfanity is the fixed list appended to the per-group banned words
// when NSFW mode is on. Deliberately mild; the per-group list carries the
// real payload.
var builtinProfanity = []string{
	"nsfw", "porn", "hentai", "xxx", "nude", "onlyfans",
}
