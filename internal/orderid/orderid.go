package orderid

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	suffixLen      = 6
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator produces human-traceable order identifiers of the form
// "<PREFIX>_<millis>_<base36x6>", uppercased. The suffix is low-entropy by
// design: the id only needs practical uniqueness for correlation, the
// authoritative control is the gateway's server-side hash check.
type Generator struct {
	prefix string
	now    func() time.Time
}

// New builds a Generator with the given id prefix.
func New(prefix string) *Generator {
	cleaned := strings.ToUpper(strings.TrimSpace(prefix))
	if cleaned == "" {
		cleaned = "CM"
	}
	return &Generator{prefix: cleaned, now: time.Now}
}

// NewID returns a fresh order id.
func (g *Generator) NewID() string {
	millis := g.now().UnixMilli()
	return strings.ToUpper(fmt.Sprintf("%s_%d_%s", g.prefix, millis, randomSuffix()))
}

func randomSuffix() string {
	max := big.NewInt(int64(len(base36Alphabet)))
	suffix := make([]byte, suffixLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a time-derived digit rather than aborting checkout.
			suffix[i] = base36Alphabet[time.Now().UnixNano()%int64(len(base36Alphabet))]
			continue
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}
	return string(suffix)
}
