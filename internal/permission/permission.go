// Package permission holds the static role capability table the console uses
// to decide which views and buttons to show. The backend performs the real
// enforcement; this table only hides affordances the request would be denied
// for anyway.
package permission

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleBuyer       Role = "buyer"
	RoleDistributor Role = "distributor"
	RoleWorker      Role = "worker"
)

type Resource string

const (
	ResourceMaterials         Resource = "materials"
	ResourceProducts          Resource = "products"
	ResourcePurchaseRecords   Resource = "purchase_records"
	ResourceSaleRecords       Resource = "sale_records"
	ResourceProductionRecords Resource = "production_records"
)

type Verb string

const (
	VerbGet    Verb = "GET"
	VerbPost   Verb = "POST"
	VerbPut    Verb = "PUT"
	VerbDelete Verb = "DELETE"
)

// Resources lists every managed resource in sidebar order.
func Resources() []Resource {
	return []Resource{
		ResourceMaterials,
		ResourceProducts,
		ResourcePurchaseRecords,
		ResourceSaleRecords,
		ResourceProductionRecords,
	}
}

// ParseRole maps a backend-provided role string onto a known Role. Unknown
// strings come back with ok=false and are treated as holding no permissions.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleBuyer, RoleDistributor, RoleWorker:
		return Role(s), true
	}
	return "", false
}

var rolePermissions = map[Role]map[Resource][]Verb{
	RoleAdmin: {
		ResourceMaterials:         {VerbGet, VerbPost, VerbPut, VerbDelete},
		ResourceProducts:          {VerbGet, VerbPost, VerbPut, VerbDelete},
		ResourcePurchaseRecords:   {VerbGet, VerbPost, VerbDelete},
		ResourceSaleRecords:       {VerbGet, VerbPost, VerbDelete},
		ResourceProductionRecords: {VerbGet, VerbPost},
	},
	RoleBuyer: {
		ResourceMaterials:       {VerbGet},
		ResourceProducts:        {VerbGet},
		ResourcePurchaseRecords: {VerbGet, VerbPost},
	},
	RoleDistributor: {
		ResourceMaterials:   {VerbGet},
		ResourceProducts:    {VerbGet},
		ResourceSaleRecords: {VerbGet, VerbPost},
	},
	RoleWorker: {
		ResourceMaterials:         {VerbGet},
		ResourceProducts:          {VerbGet},
		ResourceProductionRecords: {VerbGet, VerbPost},
	},
}

// Checker answers whether a role may perform a verb on a resource. Every
// gate in the console goes through this one check, including the visibility
// of "add" buttons (a POST check).
type Checker interface {
	Allowed(role Role, resource Resource, verb Verb) bool
}

type TableChecker struct{}

func NewChecker() Checker {
	return &TableChecker{}
}

func (c *TableChecker) Allowed(role Role, resource Resource, verb Verb) bool {
	byResource, ok := rolePermissions[role]
	if !ok {
		return false
	}
	verbs, ok := byResource[resource]
	if !ok {
		return false
	}
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}
	return false
}
