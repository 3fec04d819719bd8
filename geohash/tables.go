package geohash

// alphabet is the geohash.org base32 alphabet; a character's index is its 5-bit value.
const alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// bits holds the weight of each bit within a character, most significant first.
var bits = [5]int{16, 8, 4, 2, 1}

type parity int

const (
	even parity = iota
	odd
)

// parityOf returns the table row used when stepping a geohash of the given length.
func parityOf(length int) parity {
	if length%2 == 1 {
		return odd
	}
	return even
}

// neighbors maps a last character, by its position in the row, to the
// alphabet character of the adjacent cell.
var neighbors = [4][2]string{
	Top: {
		even: "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
		odd:  "bc01fg45238967deuvhjyznpkmstqrwx",
	},
	Bottom: {
		even: "14365h7k9dcfesgujnmqp0r2twvyx8zb",
		odd:  "238967debc01fg45kmstqrwxuvhjyznp",
	},
	Left: {
		even: "238967debc01fg45kmstqrwxuvhjyznp",
		odd:  "14365h7k9dcfesgujnmqp0r2twvyx8zb",
	},
	Right: {
		even: "bc01fg45238967deuvhjyznpkmstqrwx",
		odd:  "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
	},
}

// borders lists the characters on the edge of their parent cell; stepping
// past them carries into the parent.
var borders = [4][2]string{
	Top:    {even: "prxz", odd: "bcfguvyz"},
	Bottom: {even: "028b", odd: "0145hjnp"},
	Left:   {even: "0145hjnp", odd: "028b"},
	Right:  {even: "bcfguvyz", odd: "prxz"},
}
