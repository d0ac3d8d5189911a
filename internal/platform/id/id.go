package id

import "github.com/google/uuid"

// Generator creates opaque identifiers from a name. The same name always
// yields the same identifier so exports and projections stay stable.
type Generator interface {
	For(name string) string
}

type Stable struct{}

func (Stable) For(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("timeline:"+name)).String()
}
