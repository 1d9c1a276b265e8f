package schema

// Kind enumerates destination kinds of the value model.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBoundedString
	KindRecord
	KindList
	KindSet
	KindMap
	KindOptional
)

var kindNames = [...]string{
	KindInvalid:       "invalid",
	KindBool:          "boolean",
	KindInt8:          "int8",
	KindInt16:         "int16",
	KindInt32:         "int32",
	KindInt64:         "int64",
	KindUint8:         "uint8",
	KindUint16:        "uint16",
	KindUint32:        "uint32",
	KindUint64:        "uint64",
	KindFloat32:       "float32",
	KindFloat64:       "float64",
	KindString:        "rstring",
	KindBoundedString: "bstring",
	KindRecord:        "tuple",
	KindList:          "list",
	KindSet:           "set",
	KindMap:           "map",
	KindOptional:      "optional",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// IsScalar reports whether values of the kind are JSON scalars.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64, KindString, KindBoundedString:
		return true
	case KindInvalid, KindRecord, KindList, KindSet, KindMap, KindOptional:
		return false
	}
	return false
}

// IsNumeric reports whether the kind accepts JSON numbers.
func (k Kind) IsNumeric() bool { return k.IsSigned() || k.IsUnsigned() || k.IsFloat() }

func (k Kind) IsSigned() bool {
	return k == KindInt8 || k == KindInt16 || k == KindInt32 || k == KindInt64
}

func (k Kind) IsUnsigned() bool {
	return k == KindUint8 || k == KindUint16 || k == KindUint32 || k == KindUint64
}

func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// IsString reports whether the kind holds text.
func (k Kind) IsString() bool { return k == KindString || k == KindBoundedString }

// IsCollection reports list, set and map kinds.
func (k Kind) IsCollection() bool { return k == KindList || k == KindSet || k == KindMap }

// BitSize returns the width of numeric kinds, 0 otherwise.
func (k Kind) BitSize() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
	return 0
}
