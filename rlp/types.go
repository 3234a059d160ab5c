package rlp

// Typed accessors for string items. Integer accessors
// treat the payload as a minimal big-endian value, so the
// empty string reads as zero.

func (it Item) Uint64() (uint64, error) {
	return it.uint(8)
}

func (it Item) Uint32() (uint32, error) {
	n, err := it.uint(4)
	return uint32(n), err
}

func (it Item) Uint16() (uint16, error) {
	n, err := it.uint(2)
	return uint16(n), err
}

func (it Item) uint(width int) (uint64, error) {
	if it.list {
		return 0, merrf("item is a list, not an integer")
	}
	d := it.Data()
	if len(d) > width {
		return 0, merrf("integer must be at most %d bytes, have %d", width, len(d))
	}
	if !it.dec.Lenient && len(d) > 0 && d[0] == 0 {
		return 0, merrf("non-canonical: leading zero in integer")
	}
	var n uint64
	for i := 0; i < len(d); i++ {
		n = n<<8 | uint64(d[i])
	}
	return n, nil
}

func (it Item) Bytes() ([]byte, error) {
	if it.list {
		return nil, merrf("item is a list, not a string")
	}
	d := make([]byte, it.dataLength)
	copy(d, it.Data())
	return d, nil
}

func (it Item) String() (string, error) {
	if it.list {
		return "", merrf("item is a list, not a string")
	}
	return string(it.Data()), nil
}

func (it Item) Hash() ([32]byte, error) {
	var h [32]byte
	if it.list || it.dataLength != 32 {
		return h, merrf("hash must be exactly 32 bytes")
	}
	copy(h[:], it.Data())
	return h, nil
}

func (it Item) Address() ([20]byte, error) {
	var a [20]byte
	if it.list || it.dataLength != 20 {
		return a, merrf("address must be exactly 20 bytes")
	}
	copy(a[:], it.Data())
	return a, nil
}
