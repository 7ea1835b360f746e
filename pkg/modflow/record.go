package modflow

// FieldKind distinguishes how a record field is validated and formatted on
// disk. Int fields are cell indices or species numbers; Float32 fields are
// single-precision quantities such as concentrations.
type FieldKind int

const (
	FieldInt FieldKind = iota
	FieldFloat32
)

// Field names one column of a list-package record.
type Field struct {
	Name string
	Kind FieldKind

	// CellIndex marks fields that address a grid cell. They are written
	// 1-based on disk and converted back to 0-based on load.
	CellIndex bool
}

// EmptyValue is the sentinel preset into every field of an empty record,
// so uninitialized entries are unmistakable in generated files.
const EmptyValue = -1.0e10

// Record holds one boundary entry as values aligned to a []Field schema.
// Int-kind fields carry whole numbers; storage is uniform so empty records
// and auxiliary columns need no per-shape types.
type Record []float64

// PrescribedConcFields returns the record schema for the prescribed
// concentration boundary. Structured grids address cells by layer/row/column;
// unstructured grids by node number.
func PrescribedConcFields(structured bool) []Field {
	if structured {
		return []Field{
			{Name: "k", Kind: FieldInt, CellIndex: true},
			{Name: "i", Kind: FieldInt, CellIndex: true},
			{Name: "j", Kind: FieldInt, CellIndex: true},
			{Name: "ispecies_no", Kind: FieldInt},
			{Name: "conc", Kind: FieldFloat32},
		}
	}
	return []Field{
		{Name: "node", Kind: FieldInt, CellIndex: true},
		{Name: "ispecies_no", Kind: FieldInt},
		{Name: "conc", Kind: FieldFloat32},
	}
}

// AppendAuxFields widens a schema with caller-named float32 auxiliary
// columns, returning a new slice.
func AppendAuxFields(fields []Field, auxNames []string) []Field {
	out := make([]Field, len(fields), len(fields)+len(auxNames))
	copy(out, fields)
	for _, name := range auxNames {
		out = append(out, Field{Name: name, Kind: FieldFloat32})
	}
	return out
}

// FieldNames returns the schema's column names in order.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// EmptyRecords returns n records shaped by the schema with every field set
// to EmptyValue.
func EmptyRecords(n int, fields []Field) []Record {
	recs := make([]Record, n)
	for i := range recs {
		rec := make(Record, len(fields))
		for j := range rec {
			rec[j] = EmptyValue
		}
		recs[i] = rec
	}
	return recs
}
