//go:build ignore

// Generator for the amd64 constant-time table lookup fast paths.  Run
// from the repository root:
//
//	cd internal/asm && go run gen_lookup_amd64.go types.go -out ../../point_lookup_amd64.s -stubs /dev/null
//
// The portable lookups in `point_table.go`/`point2_table.go` are the
// canonical implementations; the generated code must stay semantically
// identical to them.
package main

import (
	. "github.com/mmcloughlin/avo/build"
	"github.com/mmcloughlin/avo/buildtags"
	. "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

func main() {
	Package(".")

	c, err := buildtags.ParseConstraint("amd64,!purego")
	if err != nil {
		panic(err)
	}
	Constraints(c)

	lookupAffinePoint("lookupAffinePoint", "affinePoint", 64)
	lookupAffinePoint("lookupAffinePoint2", "affinePoint2", 128)

	Generate()
}

// lookupAffinePoint emits a full-scan select over a table of
// `entrySize`-byte entries.  Entries are scanned with SSE2, 16 bytes
// at a time, accumulating `entry AND (idx == i)` into the output.
func lookupAffinePoint(name, typ string, entrySize int) {
	TEXT(
		name,
		NOSPLIT|NOFRAME,
		"func(tbl *"+typ+", out *"+typ+", n, idx uint64)",
	)

	tblR := Load(Param("tbl"), GP64())
	outR := Load(Param("out"), GP64())
	n := Load(Param("n"), GP64())
	idxR := Load(Param("idx"), GP64())

	idx, mask := XMM(), XMM()
	MOVQ(idxR, idx)
	PSHUFD(Imm(0x44), idx, idx)

	words := entrySize / 16
	acc := make([]reg.VecVirtual, words)
	for w := 0; w < words; w++ {
		acc[w] = XMM()
		PXOR(acc[w], acc[w])
	}

	i, tmp := GP64(), XMM()
	XORQ(i, i)

	Label(name + "Loop")
	MOVQ(i, mask)
	PSHUFD(Imm(0x44), mask, mask)

	// mask = (i == idx) ? ^0 : 0, as a pair of 64-bit lanes.
	{
		eq := XMM()
		MOVOU(mask, eq)
		PCMPEQL(idx, eq)
		MOVOU(eq, mask)
		PSHUFD(Imm(0xb1), eq, eq)
		PAND(eq, mask)
	}

	for w := 0; w < words; w++ {
		MOVOU(Mem{Base: tblR}.Offset(16*w), tmp)
		PAND(mask, tmp)
		POR(tmp, acc[w])
	}

	ADDQ(Imm(uint64(entrySize)), tblR)
	INCQ(i)
	CMPQ(i, n)
	JB(LabelRef(name + "Loop"))

	for w := 0; w < words; w++ {
		MOVOU(acc[w], Mem{Base: outR}.Offset(16*w))
	}

	RET()
}
