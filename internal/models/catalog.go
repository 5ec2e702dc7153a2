package models

// OrderStatus represents the production status of an order.
// Any status may be set from any other; there is no transition graph.
type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "New Order"
	OrderStatusFabricCutting  OrderStatus = "Fabric Cutting"
	OrderStatusSewing         OrderStatus = "Sewing"
	OrderStatusReadyForPickup OrderStatus = "Ready for Pickup"
	OrderStatusCompleted      OrderStatus = "Completed"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid status in display order
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusFabricCutting,
	OrderStatusSewing,
	OrderStatusReadyForPickup,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid checks the status against the closed set
func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InProgress reports whether the garment is being worked on
func (s OrderStatus) InProgress() bool {
	return s == OrderStatusFabricCutting || s == OrderStatusSewing
}

// Fabric is the cloth an order is cut from
type Fabric string

const (
	FabricJapaneseSynthetic Fabric = "Japanese Synthetic"
	FabricKoreanCotton      Fabric = "Korean Cotton"
	FabricIndonesianBlend   Fabric = "Indonesian Blend"
	FabricSwissCotton       Fabric = "Swiss Cotton"
)

var Fabrics = []Fabric{FabricJapaneseSynthetic, FabricKoreanCotton, FabricIndonesianBlend, FabricSwissCotton}

func (f Fabric) IsValid() bool {
	for _, v := range Fabrics {
		if f == v {
			return true
		}
	}
	return false
}

// Collar is the collar style
type Collar string

const (
	CollarStandardSaudi Collar = "Standard Saudi"
	CollarRound         Collar = "Round"
	CollarStandUp       Collar = "Stand-up"
)

var Collars = []Collar{CollarStandardSaudi, CollarRound, CollarStandUp}

func (c Collar) IsValid() bool {
	for _, v := range Collars {
		if c == v {
			return true
		}
	}
	return false
}

// Cuff is the cuff style
type Cuff string

const (
	CuffSimple    Cuff = "Simple"
	CuffCufflinks Cuff = "Cufflinks"
)

var Cuffs = []Cuff{CuffSimple, CuffCufflinks}

func (c Cuff) IsValid() bool {
	for _, v := range Cuffs {
		if c == v {
			return true
		}
	}
	return false
}

// Pocket is the pocket style
type Pocket string

const (
	PocketStandardChest Pocket = "Standard Chest"
	PocketHiddenSide    Pocket = "Hidden Side"
)

var Pockets = []Pocket{PocketStandardChest, PocketHiddenSide}

func (p Pocket) IsValid() bool {
	for _, v := range Pockets {
		if p == v {
			return true
		}
	}
	return false
}

// Stitching is the stitching visibility
type Stitching string

const (
	StitchingHidden  Stitching = "Hidden"
	StitchingVisible Stitching = "Visible"
)

var Stitchings = []Stitching{StitchingHidden, StitchingVisible}

func (s Stitching) IsValid() bool {
	for _, v := range Stitchings {
		if s == v {
			return true
		}
	}
	return false
}

// Catalog groups every option set offered on the order form
type Catalog struct {
	Statuses   []OrderStatus `json:"statuses"`
	Fabrics    []Fabric      `json:"fabrics"`
	Collars    []Collar      `json:"collars"`
	Cuffs      []Cuff        `json:"cuffs"`
	Pockets    []Pocket      `json:"pockets"`
	Stitchings []Stitching   `json:"stitchings"`
}

// DefaultCatalog returns the fixed option sets
func DefaultCatalog() Catalog {
	return Catalog{
		Statuses:   OrderStatuses,
		Fabrics:    Fabrics,
		Collars:    Collars,
		Cuffs:      Cuffs,
		Pockets:    Pockets,
		Stitchings: Stitchings,
	}
}
