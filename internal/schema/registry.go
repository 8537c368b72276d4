package schema

// Kind is the JSON shape a field is coerced to before its rule tag runs.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindDate
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Field is a single declarative rule. Tag holds go-playground/validator
// rules applied to the coerced value.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
	Tag      string
	MinItems int
	Items    *Field
	Fields   []Field
}

// Schema is an ordered field list; violations are reported in this order.
type Schema struct {
	Name   string
	Fields []Field
}

const (
	ID         = "id"
	Pagination = "pagination"
	Product    = "product"
	Order      = "order"
	Offer      = "offer"
)

// SortFields are the values accepted by the pagination sort parameter.
var SortFields = []string{"name", "price", "created_at", "-name", "-price", "-created_at"}

var registry = map[string]Schema{
	ID: {
		Name: ID,
		Fields: []Field{
			{Name: "id", Kind: KindString, Required: true, Tag: "uuid"},
		},
	},
	Pagination: {
		Name: Pagination,
		Fields: []Field{
			{Name: "page", Kind: KindInteger, Default: 1, Tag: "min=1"},
			{Name: "limit", Kind: KindInteger, Default: 10, Tag: "min=1,max=100"},
			{Name: "sort", Kind: KindString, Default: "-created_at", Tag: "oneof=name price created_at -name -price -created_at"},
		},
	},
	Product: {
		Name: Product,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true, Tag: "min=2,max=255"},
			{Name: "name_en", Kind: KindString, Tag: "max=255"},
			{Name: "description", Kind: KindString, Tag: "max=1000"},
			{Name: "price", Kind: KindNumber, Required: true, Tag: "gt=0"},
			{Name: "original_price", Kind: KindNumber, Tag: "gt=0"},
			{Name: "discount", Kind: KindInteger, Default: 0, Tag: "min=0,max=100"},
			{Name: "category", Kind: KindString, Required: true},
			{Name: "image", Kind: KindString, Tag: "uri"},
			{Name: "ingredients", Kind: KindArray, Items: &Field{Kind: KindString}},
			{Name: "featured", Kind: KindBoolean, Default: false},
			{Name: "in_stock", Kind: KindBoolean, Default: true},
		},
	},
	Order: {
		Name: Order,
		Fields: []Field{
			{
				Name:     "items",
				Kind:     KindArray,
				Required: true,
				MinItems: 1,
				Items: &Field{
					Kind: KindObject,
					Fields: []Field{
						{Name: "id", Kind: KindString, Required: true, Tag: "uuid"},
						{Name: "name", Kind: KindString, Required: true},
						{Name: "price", Kind: KindNumber, Required: true, Tag: "gt=0"},
						{Name: "quantity", Kind: KindInteger, Required: true, Tag: "gt=0"},
					},
				},
			},
			{
				Name:     "customer_info",
				Kind:     KindObject,
				Required: true,
				Fields: []Field{
					{Name: "firstName", Kind: KindString, Required: true},
					{Name: "lastName", Kind: KindString, Required: true},
					{Name: "phone", Kind: KindString, Required: true, Tag: "egyptmobile"},
					{Name: "email", Kind: KindString, Tag: "email"},
					{Name: "city", Kind: KindString, Required: true},
					{Name: "address", Kind: KindString, Required: true},
					{Name: "notes", Kind: KindString},
				},
			},
			{Name: "payment_method", Kind: KindString, Default: "cod", Tag: "oneof=cod card wallet"},
		},
	},
	Offer: {
		Name: Offer,
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true, Tag: "min=2,max=255"},
			{Name: "description", Kind: KindString, Tag: "max=1000"},
			{Name: "discount", Kind: KindInteger, Required: true, Tag: "min=1,max=100"},
			{Name: "category", Kind: KindString},
			{Name: "end_date", Kind: KindDate, Tag: "future"},
			{Name: "active", Kind: KindBoolean, Default: true},
		},
	},
}

func Lookup(name string) (Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns the registered schema names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
