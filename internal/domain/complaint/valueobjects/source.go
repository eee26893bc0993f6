package valueobjects

import "fmt"

// Source records the channel a complaint arrived through.
type Source string

const (
	SourcePhone    Source = "phone"
	SourceEmail    Source = "email"
	SourceInPerson Source = "in_person"
	SourceWeb      Source = "web"
	SourceOther    Source = "other"
)

var validSources = map[Source]bool{
	SourcePhone:    true,
	SourceEmail:    true,
	SourceInPerson: true,
	SourceWeb:      true,
	SourceOther:    true,
}

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	return validSources[s]
}

func NewSource(s string) (Source, error) {
	src := Source(s)
	if !src.IsValid() {
		return "", fmt.Errorf("invalid complaint source: %s", s)
	}
	return src, nil
}

// DefaultSource is applied when intake does not record a channel.
func DefaultSource() Source {
	return SourceOther
}
