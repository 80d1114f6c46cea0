package user

type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleCourier    Role = "COURIER"
	RoleRestaurant Role = "RESTAURANT"
	RoleAdmin      Role = "ADMIN"
)

type ClientStatus string

const (
	ClientActive    ClientStatus = "ACTIVE"
	ClientSuspended ClientStatus = "SUSPENDED"
)

// CourierStatus is a tri-state: DISQUALIFIED is terminal and is not the
// same thing as being busy with a delivery.
type CourierStatus string

const (
	CourierAvailable    CourierStatus = "AVAILABLE"
	CourierBusy         CourierStatus = "BUSY"
	CourierDisqualified CourierStatus = "DISQUALIFIED"
)

type CuisineType string

const (
	CuisineItalian     CuisineType = "ITALIAN"
	CuisineChinese     CuisineType = "CHINESE"
	CuisineMexican     CuisineType = "MEXICAN"
	CuisineFastFood    CuisineType = "FAST_FOOD"
	CuisineTraditional CuisineType = "TRADITIONAL"
)

var CuisineTypes = []CuisineType{
	CuisineItalian,
	CuisineChinese,
	CuisineMexican,
	CuisineFastFood,
	CuisineTraditional,
}

type Client struct {
	ID         string
	Name       string
	Address    string
	Phone      string
	CardNumber string
	Status     ClientStatus
	Email      string
	Password   string
}

type Courier struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	CardNumber  string
	Status      CourierStatus
	LastTripKm  int
	DailyKm     int
	Penalties   int
	WeekdayRate int
	WeekendRate int
	Complaints  []string
	Email       string
	Password    string
}

// Eligible reports whether the courier can take a new order.
func (c Courier) Eligible() bool {
	return c.Status == CourierAvailable && c.Penalties < MaxPenalties
}

// MaxPenalties is the disqualification threshold: a courier that
// accumulates this many penalties never gets assigned again.
const MaxPenalties = 4

type Restaurant struct {
	ID         string
	Name       string
	Address    string
	Phone      string
	Cuisine    CuisineType
	AvgRating  float64
	OrderCount int
	Menu       map[int]string
	Email      string
	Password   string
}

const (
	// Per-km courier rates in colones, fixed at registration.
	DefaultWeekdayRate = 1000
	DefaultWeekendRate = 1500
)
