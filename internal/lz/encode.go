package lz

import (
	"bytes"
	"encoding/binary"
)

// The on-disk format picks one length/distance split per 30-decision group
// via the low two bits of that group's flags word (see Decompress). To keep
// both encoders simple and always-correct without per-group bookkeeping,
// both restrict their search to the selector-3 split: an 11-bit distance
// (window of 2048 bytes) and a 5-bit length field, i.e. matches of
// [minMatch, maxMatch] bytes at a distance of at most maxDist. This is a
// strict subset of what the format can express (selector 0 reaches a full
// 16384-byte window at the cost of 6-byte matches) but it is what every
// group below ends up encoded with, so there is never a conflict between two
// matches in the same group wanting different selectors.
const (
	lengthSelector = 3
	minMatch       = 3
	maxMatch       = minMatch + int(0xffff>>(windowLog-lengthSelector))
	maxDist        = int(windowMask>>lengthSelector) + 1
)

// CompressFast performs a single greedy forward pass: at every position it
// searches the already-emitted window for the longest match of at least
// minMatch bytes and, when found, emits a back-reference; otherwise it
// emits a literal. It guarantees Decompress(dst, CompressFast(src), false)
// reproduces src exactly, but does not attempt to find globally optimal
// matches the way CompressOptimized does.
func CompressFast(src []byte) []byte {
	return compress(src, newMatcher(src, 16))
}

// CompressOptimized uses a longer hash-chain search (and is allowed to keep
// searching after finding the first qualifying match) to approach the
// compression ratios of the original toolchain. It is only used when
// Options.Optimization is set; CompressFast is used otherwise.
func CompressOptimized(src []byte) []byte {
	return compress(src, newMatcher(src, 128))
}

type matcher struct {
	src      []byte
	head     []int
	prev     []int
	inserted int
	maxChain int
}

const hashBits = 15
const hashSize = 1 << hashBits

func newMatcher(src []byte, maxChain int) *matcher {
	head := make([]int, hashSize)
	for i := range head {
		head[i] = -1
	}
	return &matcher{
		src:      src,
		head:     head,
		prev:     make([]int, len(src)),
		inserted: -1,
		maxChain: maxChain,
	}
}

func (m *matcher) hash(p int) uint32 {
	v := uint32(m.src[p]) | uint32(m.src[p+1])<<8 | uint32(m.src[p+2])<<16
	return (v * 2654435761) >> (32 - hashBits)
}

func (m *matcher) insertUpTo(pos int) {
	for m.inserted < pos {
		m.inserted++
		if m.inserted+3 > len(m.src) {
			continue
		}
		h := m.hash(m.inserted)
		m.prev[m.inserted] = m.head[h]
		m.head[h] = m.inserted
	}
}

// find returns the best (distance, length) match for the bytes starting at
// pos, or (0, 0) if no match of at least minMatch bytes exists within
// maxDist.
func (m *matcher) find(pos int) (dist, length int) {
	m.insertUpTo(pos - 1)
	if pos+minMatch > len(m.src) {
		return 0, 0
	}
	cand := m.head[m.hash(pos)]
	bestLen, bestDist := 0, 0
	for tries := 0; cand >= 0 && tries < m.maxChain; tries++ {
		if pos-cand > maxDist {
			break
		}
		l := matchLen(m.src, cand, pos)
		if l > bestLen {
			bestLen, bestDist = l, pos-cand
			if bestLen >= maxMatch {
				break
			}
		}
		cand = m.prev[cand]
	}
	if bestLen < minMatch {
		return 0, 0
	}
	if bestLen > maxMatch {
		bestLen = maxMatch
	}
	return bestDist, bestLen
}

func matchLen(src []byte, a, b int) int {
	n := 0
	for b+n < len(src) && src[a+n] == src[b+n] && n < maxMatch {
		n++
	}
	return n
}

// decision is either a literal byte or a back-reference, queued up before
// being packed into 30-decision groups with their shared flags word.
type decision struct {
	isMatch bool
	lit     byte
	dist    int
	length  int
}

func compress(src []byte, find func(pos int) (dist, length int)) []byte {
	var decisions []decision
	pos := 0
	for pos < len(src) {
		dist, length := find(pos)
		if length >= minMatch {
			decisions = append(decisions, decision{isMatch: true, dist: dist, length: length})
			pos += length
		} else {
			decisions = append(decisions, decision{lit: src[pos]})
			pos++
		}
	}

	var out bytes.Buffer
	for i := 0; i < len(decisions); i += 30 {
		group := decisions[i:minInt(i+30, len(decisions))]

		var flags uint32
		for bit, d := range group {
			if d.isMatch {
				flags |= 1 << uint(31-bit)
			}
		}

		var flagsBuf [4]byte
		binary.BigEndian.PutUint32(flagsBuf[:], flags|lengthSelector)
		out.Write(flagsBuf[:])

		const tempShift = windowLog - lengthSelector
		for _, d := range group {
			if d.isMatch {
				t := uint32(d.length-minMatch)<<tempShift | uint32(d.dist-1)
				var b [2]byte
				binary.BigEndian.PutUint16(b[:], uint16(t))
				out.Write(b[:])
			} else {
				out.WriteByte(d.lit)
			}
		}
	}

	return out.Bytes()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
