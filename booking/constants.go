package booking

// Booking-site endpoints. The first form submission carries the wicket
// jsessionid in the path; transport substitutes it from the session cookie.
const (
	BaseURL        = "https://irs.thsrc.com.tw"
	BookingPageURL = BaseURL + "/IMINT/?locale=tw"

	SubmitFormURL    = BaseURL + "/IMINT/;jsessionid=%s?wicket:interface=:0:BookingS1Form::IFormSubmitListener"
	ConfirmTrainURL  = BaseURL + "/IMINT/?wicket:interface=:1:BookingS2Form::IFormSubmitListener"
	ConfirmTicketURL = BaseURL + "/IMINT/?wicket:interface=:2:BookingS3Form::IFormSubmitListener"
)

// Form identifies one of the three named booking forms.
type Form int

const (
	BookingForm Form = iota // BookingS1Form: trip conditions
	TrainForm               // BookingS2Form: train selection
	TicketForm              // BookingS3Form: passenger / ticket confirmation
)

func (f Form) String() string {
	switch f {
	case BookingForm:
		return "BookingS1Form"
	case TrainForm:
		return "BookingS2Form"
	case TicketForm:
		return "BookingS3Form"
	}
	return "unknown"
}

// EarlyBirdMarker is the discount-label text identifying an early-bird fare.
const EarlyBirdMarker = "早鳥"

// TrainRequirement restricts which trains are eligible for selection.
type TrainRequirement string

const (
	AnyTrain      TrainRequirement = "0"
	EarlyBirdOnly TrainRequirement = "1"
	NormalOnly    TrainRequirement = "2"
)

// Category is a passenger category. Each maps to a fixed one-letter code
// appended to the ticket-count form value.
type Category int

const (
	Adult Category = iota
	Child
	Disabled
	Elder
	College
)

// Categories is the fixed iteration order used for form rows and
// passenger slots.
var Categories = [5]Category{Adult, Child, Disabled, Elder, College}

var categoryCodes = [5]string{"F", "H", "W", "E", "P"}

var categoryNames = [5]string{"adult", "child", "disabled", "elder", "college"}

// Code returns the category's one-letter ticket code.
func (c Category) Code() string { return categoryCodes[c] }

func (c Category) String() string { return categoryNames[c] }

// StationMap maps station names to their booking-form codes (1..12).
var StationMap = map[string]int{
	"Nangang":  1,
	"Taipei":   2,
	"Banqiao":  3,
	"Taoyuan":  4,
	"Hsinchu":  5,
	"Miaoli":   6,
	"Taichung": 7,
	"Changhua": 8,
	"Yunlin":   9,
	"Chiayi":   10,
	"Tainan":   11,
	"Zuoying":  12,
}

const (
	minStationCode = 1
	maxStationCode = 12
)

// timeSlots enumerates the discrete departure-time values the booking form
// accepts, in site order.
var timeSlots = []string{
	"1201A", "1230A",
	"600A", "630A", "700A", "730A", "800A", "830A",
	"900A", "930A", "1000A", "1030A", "1100A", "1130A",
	"1200N",
	"1230P", "100P", "130P", "200P", "230P", "300P", "330P",
	"400P", "430P", "500P", "530P", "600P", "630P", "700P", "730P",
	"800P", "830P", "900P", "930P", "1000P", "1030P", "1100P", "1130P",
}

// ValidTimeSlot reports whether v is a recognized departure-time slot.
func ValidTimeSlot(v string) bool {
	for _, s := range timeSlots {
		if s == v {
			return true
		}
	}
	return false
}

// First-form field names (BookingS1Form).
const (
	fieldStartStation = "selectStartStation"
	fieldDestStation  = "selectDestinationStation"
	fieldSearchBy     = "bookingMethod"
	fieldTripType     = "tripCon:typesoftrip"
	fieldOutboundDate = "toTimeInputField"
	fieldOutboundTime = "toTimeTable"
	fieldSecurityCode = "homeCaptcha:securityCode"
	fieldSeatPrefer   = "seatCon:seatRadioGroup"
	fieldFormMark     = "BookingS1Form:hf:0"
	fieldClassType    = "trainCon:trainRadioGroup"
	fieldTicketAmount = "ticketPanel:rows:%d:ticketAmount"
)

// Train-form field names (BookingS2Form).
const (
	fieldTrainGroup    = "TrainQueryDataViewPanel:TrainGroup"
	fieldTrainFormMark = "BookingS2Form:hf:0"
)

// Ticket-form field names (BookingS3Form).
const (
	fieldMemberRadio     = "TicketMemberSystemInputPanel:TakerMemberSystemDataView:memberSystemRadioGroup"
	fieldPersonalID      = "dummyId"
	fieldPhone           = "dummyPhone"
	fieldEmail           = "email"
	fieldIDInputRadio    = "idInputRadio"
	fieldAgree           = "agree"
	fieldTicketFormMark  = "BookingS3FormSP:hf:0"
	fieldDiffOver        = "diffOver"
	fieldIsGoBack        = "isGoBackM"
	fieldBackHome        = "backHome"
	fieldTgoError        = "TgoError"
	fieldPassengerChoice = "TicketPassengerInfoInputPanel:passengerDataView:passengerDataView%d:passengerDataInputChoice"
	fieldPassengerID     = "TicketPassengerInfoInputPanel:passengerDataView:passengerDataView%d:passengerDataIdNumber"

	// Passenger slots on the confirmation page are numbered from 2.
	passengerSlotBase = 2
)
