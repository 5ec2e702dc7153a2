package models

// Measurements holds the standard thobe measurements in cm.
// Values are kept as entered on the form and are not validated.
type Measurements struct {
	Length       string `json:"length"`
	Shoulders    string `json:"shoulders"`
	SleeveLength string `json:"sleeveLength"`
	SleeveWidth  string `json:"sleeveWidth"`
	Neck         string `json:"neck"`
	Chest        string `json:"chest"`
	Waist        string `json:"waist"`
	CuffsLength  string `json:"cuffsLength"`
	CuffsWidth   string `json:"cuffsWidth"`
	ChestPlate   string `json:"chestPlate"`
	BottomWidth  string `json:"bottomWidth"`
}

// LooseMeasurements holds the optional looseness allowances
type LooseMeasurements struct {
	BodyLoose  string `json:"bodyLoose"`
	WaistLoose string `json:"waistLoose"`
	HipLoose   string `json:"hipLoose"`
	ChestLoose string `json:"chestLoose"`
	Bicep      string `json:"bicep"`
	Wrist      string `json:"wrist"`
}

// MeasurementProfile is the saved measurement set of a customer.
// It only holds strings so two profiles can be compared with ==.
type MeasurementProfile struct {
	Standard Measurements      `json:"standard"`
	Loose    LooseMeasurements `json:"loose"`
}

// Field is a labelled measurement value used for printing
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Fields lists the standard measurements in form order
func (m Measurements) Fields() []Field {
	return []Field{
		{Label: "Length", Value: m.Length},
		{Label: "Shoulders", Value: m.Shoulders},
		{Label: "Sleeve Length", Value: m.SleeveLength},
		{Label: "Sleeve Width", Value: m.SleeveWidth},
		{Label: "Neck", Value: m.Neck},
		{Label: "Chest", Value: m.Chest},
		{Label: "Waist", Value: m.Waist},
		{Label: "Cuffs Length", Value: m.CuffsLength},
		{Label: "Cuffs Width", Value: m.CuffsWidth},
		{Label: "Chest Plate", Value: m.ChestPlate},
		{Label: "Bottom Width", Value: m.BottomWidth},
	}
}

// Fields lists the loose measurements in form order
func (l LooseMeasurements) Fields() []Field {
	return []Field{
		{Label: "Body Loose", Value: l.BodyLoose},
		{Label: "Waist Loose", Value: l.WaistLoose},
		{Label: "Hip Loose", Value: l.HipLoose},
		{Label: "Chest Loose", Value: l.ChestLoose},
		{Label: "Bicep", Value: l.Bicep},
		{Label: "Wrist", Value: l.Wrist},
	}
}
