package types

// Gender is the customer's recorded gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is a known value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// YesNo is a plain two-valued attribute.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Valid reports whether v is a known value.
func (v YesNo) Valid() bool {
	return v == Yes || v == No
}

// MultipleLines records whether the customer has more than one phone line.
// NoPhoneService is distinct from No: the question does not apply.
type MultipleLines string

const (
	MultipleLinesYes     MultipleLines = "Yes"
	MultipleLinesNo      MultipleLines = "No"
	MultipleLinesNoPhone MultipleLines = "No phone service"
)

// Valid reports whether m is a known value.
func (m MultipleLines) Valid() bool {
	switch m {
	case MultipleLinesYes, MultipleLinesNo, MultipleLinesNoPhone:
		return true
	}
	return false
}

// InternetService is the customer's internet access type.
type InternetService string

const (
	InternetDSL   InternetService = "DSL"
	InternetFiber InternetService = "Fiber optic"
	InternetNone  InternetService = "No"
)

// Valid reports whether s is a known value.
func (s InternetService) Valid() bool {
	switch s {
	case InternetDSL, InternetFiber, InternetNone:
		return true
	}
	return false
}

// InternetAddon is one of the internet-dependent service flags
// (online security, backup, device protection, tech support, streaming).
type InternetAddon string

const (
	AddonYes        InternetAddon = "Yes"
	AddonNo         InternetAddon = "No"
	AddonNoInternet InternetAddon = "No internet service"
)

// Valid reports whether a is a known value.
func (a InternetAddon) Valid() bool {
	switch a {
	case AddonYes, AddonNo, AddonNoInternet:
		return true
	}
	return false
}

// Contract is the customer's contract term.
type Contract string

const (
	ContractMonthToMonth Contract = "Month-to-month"
	ContractOneYear      Contract = "One year"
	ContractTwoYear      Contract = "Two year"
)

// Valid reports whether c is a known value.
func (c Contract) Valid() bool {
	switch c {
	case ContractMonthToMonth, ContractOneYear, ContractTwoYear:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentElectronicCheck PaymentMethod = "Electronic check"
	PaymentMailedCheck     PaymentMethod = "Mailed check"
	PaymentBankTransfer    PaymentMethod = "Bank transfer (automatic)"
	PaymentCreditCard      PaymentMethod = "Credit card (automatic)"
)

// Valid reports whether p is a known value.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentElectronicCheck, PaymentMailedCheck, PaymentBankTransfer, PaymentCreditCard:
		return true
	}
	return false
}

// Numeric bounds for CustomerRecord. Both ends are inclusive.
const (
	MinTenure         = 0
	MaxTenure         = 72
	MinMonthlyCharges = 0.0
	MaxMonthlyCharges = 200.0
	MinTotalCharges   = 0.0
	MaxTotalCharges   = 10000.0
)

// CustomerRecord is the raw attribute set for one customer.
// Field names in JSON and YAML are the canonical snake_case feature names.
type CustomerRecord struct {
	Tenure         int     `json:"tenure" yaml:"tenure"`
	MonthlyCharges float64 `json:"monthly_charges" yaml:"monthly_charges"`
	TotalCharges   float64 `json:"total_charges" yaml:"total_charges"`

	Gender           Gender `json:"gender" yaml:"gender"`
	SeniorCitizen    YesNo  `json:"senior_citizen" yaml:"senior_citizen"`
	Partner          YesNo  `json:"partner" yaml:"partner"`
	Dependents       YesNo  `json:"dependents" yaml:"dependents"`
	PhoneService     YesNo  `json:"phone_service" yaml:"phone_service"`
	PaperlessBilling YesNo  `json:"paperless_billing" yaml:"paperless_billing"`

	MultipleLines    MultipleLines   `json:"multiple_lines" yaml:"multiple_lines"`
	InternetService  InternetService `json:"internet_service" yaml:"internet_service"`
	OnlineSecurity   InternetAddon   `json:"online_security" yaml:"online_security"`
	OnlineBackup     InternetAddon   `json:"online_backup" yaml:"online_backup"`
	DeviceProtection InternetAddon   `json:"device_protection" yaml:"device_protection"`
	TechSupport      InternetAddon   `json:"tech_support" yaml:"tech_support"`
	StreamingTV      InternetAddon   `json:"streaming_tv" yaml:"streaming_tv"`
	StreamingMovies  InternetAddon   `json:"streaming_movies" yaml:"streaming_movies"`

	Contract      Contract      `json:"contract" yaml:"contract"`
	PaymentMethod PaymentMethod `json:"payment_method" yaml:"payment_method"`
}

// DefaultCustomerRecord returns the record the intake form starts from:
// a one-year DSL customer on a month-to-month contract with no add-ons.
func DefaultCustomerRecord() CustomerRecord {
	return CustomerRecord{
		Tenure:           12,
		MonthlyCharges:   50.0,
		TotalCharges:     600.0,
		Gender:           GenderMale,
		SeniorCitizen:    No,
		Partner:          No,
		Dependents:       No,
		PhoneService:     Yes,
		PaperlessBilling: Yes,
		MultipleLines:    MultipleLinesNo,
		InternetService:  InternetDSL,
		OnlineSecurity:   AddonNo,
		OnlineBackup:     AddonNo,
		DeviceProtection: AddonNo,
		TechSupport:      AddonNo,
		StreamingTV:      AddonNo,
		StreamingMovies:  AddonNo,
		Contract:         ContractMonthToMonth,
		PaymentMethod:    PaymentElectronicCheck,
	}
}
