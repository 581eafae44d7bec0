package models

// Header spellings accepted for each logical column, most specific first.
// Lookups ignore case.
var (
	ColStatus           = []string{"Status"}
	ColErrorText        = []string{"ErrorText", "Error Text", "ErrorMessage", "Error"}
	ColQuoteNumber      = []string{"QuotationNo", "QuotationNumber", "QuoteNumber", "QuoteNo", "Quote #", "Quotation #"}
	ColPolicyNumber     = []string{"PolicyNumber", "PolicyNo", "Policy #", "Policy Number", "PolicyNum", "PolicyID"}
	ColChassis          = []string{"ChassisNumber", "ChassisNo", "Chassis #", "Chassis Number", "Chassis", "VIN", "VINNumber", "VIN Number"}
	ColEID              = []string{"EID", "EmiratesID", "Emirates ID", "EmiratesIdNumber", "EIDNumber", "NationalID", "National ID", "NationalIdNumber"}
	ColInsuranceType    = []string{"InsuranceType", "Insurance Type"}
	ColInsurancePurpose = []string{"InsurancePurpose", "Insurance Purpose"}
	ColCompany          = []string{"ICName", "InsuranceCompany", "Insurance Company"}
	ColManufactureYear  = []string{"ManufactureYear", "Manufacture Year", "ModelYear"}
	ColEstimatedValue   = []string{"EstimatedValue", "Estimated Value", "VehicleValue"}
	ColPremium          = []string{"PolicyPremium", "Policy Premium", "Premium", "TotalPremium", "PremiumAmount"}
	ColBodyCategory     = []string{"BodyCategory", "Body Category", "BodyType"}
	ColOverrideSpec     = []string{"OverrideIsGccSpec"}
	ColMake             = []string{"ShoryMakeEn", "MakeEn", "Make"}
	ColModel            = []string{"ShoryModelEn", "ModelEn", "Model"}
	ColAge              = []string{"Age", "DriverAge", "Driver Age"}
	ColRequestedOn      = []string{"QuoteRequestedOn", "Quote Requested On", "RequestedOn"}
	ColIsChinese        = []string{"IsChinese"}
	ColFuelType         = []string{"FuelType", "Fuel Type"}
)

// RecognizedColumns is the export schema. The loader scores candidate header
// rows by how many of these they contain.
var RecognizedColumns = []string{
	"QuoteRequestedOn", "Status", "ReferenceNumber", "InsurancePurpose", "ICName",
	"ShoryMakeEn", "ShoryModelEn", "OverrideIsGccSpec", "Age", "LicenseIssueDate",
	"BodyCategory", "ChassisNumber", "InsuranceType", "ManufactureYear",
	"RegistrationDate", "QuotationNo", "EstimatedValue", "InsuranceExpiryDate",
	"ErrorText", "EID", "PolicyNumber", "PolicyPremium", "IsChinese", "FuelType",
	"VIN",
}
