// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package value

import (
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
)

const (
	k0, k1 = 0x736f6d6570736575, 0x646f72616e646f6d
)

func (Empty) encode(dst []byte) []byte { return append(dst, byte(EmptyType)) }
func (Null) encode(dst []byte) []byte  { return append(dst, byte(NullType)) }

func (b Bool) encode(dst []byte) []byte {
	if b {
		return append(dst, byte(BoolType), 1)
	}
	return append(dst, byte(BoolType), 0)
}

func (i Int) encode(dst []byte) []byte {
	dst = append(dst, byte(IntType))
	return binary.LittleEndian.AppendUint64(dst, uint64(i))
}

func (f Float) encode(dst []byte) []byte {
	// integral floats compare equal to
	// integers, so they must hash the same way
	if t := math.Trunc(float64(f)); t == float64(f) && t >= math.MinInt64 && t < math.MaxInt64 {
		return Int(int64(t)).encode(dst)
	}
	dst = append(dst, byte(FloatType))
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(float64(f)))
}

func (s String) encode(dst []byte) []byte {
	dst = append(dst, byte(StringType))
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func (l *List) encode(dst []byte) []byte {
	dst = append(dst, byte(ListType))
	dst = binary.AppendUvarint(dst, uint64(len(l.Items)))
	for i := range l.Items {
		dst = l.Items[i].encode(dst)
	}
	return dst
}

func (t *Table) encode(dst []byte) []byte {
	dst = append(dst, byte(TableType))
	dst = binary.AppendUvarint(dst, uint64(len(t.Columns)))
	for i := range t.Columns {
		dst = String(t.Columns[i]).encode(dst)
	}
	dst = binary.AppendUvarint(dst, uint64(len(t.Rows)))
	for i := range t.Rows {
		dst = encodeRow(dst, t.Rows[i])
	}
	return dst
}

func encodeRow(dst []byte, row []Datum) []byte {
	for i := range row {
		dst = row[i].encode(dst)
	}
	return dst
}

// Hash returns a 64-bit hash of d.
// Datums that are Equal have the same hash.
func Hash(d Datum) uint64 {
	return siphash.Hash(k0, k1, d.encode(nil))
}

// HashRow returns a 64-bit hash of a row.
// The scratch buffer is used for encoding
// the row and the (possibly re-allocated)
// buffer is returned for re-use.
func HashRow(scratch []byte, row []Datum) (uint64, []byte) {
	scratch = encodeRow(scratch[:0], row)
	return siphash.Hash(k0, k1, scratch), scratch
}
