package pubsub

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// ChannelID returns a stable, content-derived identifier for a channel
// name. It identifies channels in logs and engine-side bookkeeping without
// retaining the name itself.
func ChannelID(name string) uint64 {
	return xxhash.Sum64String(name)
}

const (
	hashSeed1 = 0x736f6d6570736575
	hashSeed2 = 0x646f72616e646f6d
)

// clientHash computes the subscription identity hash from the bit patterns
// of the handler and user-data references. It deliberately hashes no
// content: two subscriptions are "the same" only when they carry the same
// handler values and the same user-data references. Distinct combinations
// hashing identically is a documented theoretical risk of this scheme, not
// something callers can rely on being detected.
func clientHash(args SubscribeArgs) uint64 {
	om := uint64(dataWord(args.OnMessage))
	ou := uint64(dataWord(args.OnUnsubscribe))
	u1 := uint64(dataWord(args.Udata1))
	u2 := uint64(dataWord(args.Udata2))

	return (((om * (u1 ^ hashSeed1)) >> 5) |
		((ou * (u1 ^ hashSeed1)) << 47)) ^
		(u2 ^ hashSeed2)
}

// dataWord extracts the data pointer word of an interface value. For
// pointer-shaped values (pointers, funcs, channels, maps) this is a stable
// identity; values boxed on conversion to any may yield a fresh word per
// conversion and therefore never deduplicate.
func dataWord(v any) uintptr {
	if v == nil {
		return 0
	}
	type eface struct {
		typ  unsafe.Pointer
		data unsafe.Pointer
	}
	return uintptr((*eface)(unsafe.Pointer(&v)).data)
}
