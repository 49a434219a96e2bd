package sim

// Rand is the random source for cosmetic variation: the initial facing of a
// new actor and the spray jitter of some projectile kinds. Physics and
// collision never draw from it. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
