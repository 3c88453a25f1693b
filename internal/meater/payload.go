package meater

// Wire types for the Meater Cloud public API. Pointer fields mark values the
// decoder must see before it will build a Snapshot.

type devicesResponse struct {
	Status     string       `json:"status"`
	StatusCode int          `json:"statusCode"`
	Data       *devicesData `json:"data"`
}

type devicesData struct {
	Devices *[]device `json:"devices"`
}

type device struct {
	ID          string       `json:"id"`
	Temperature *temperature `json:"temperature"`
	Cook        *cook        `json:"cook"`
	UpdatedAt   *int64       `json:"updatedAt"`
}

type temperature struct {
	Internal *float64 `json:"internal"`
	Ambient  *float64 `json:"ambient"`
}

type cook struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	State       string           `json:"state"`
	Temperature *cookTemperature `json:"temperature"`
	Time        *cookTime        `json:"time"`
}

type cookTemperature struct {
	Target *float64 `json:"target"`
	Peak   float64  `json:"peak"`
}

type cookTime struct {
	Elapsed   *int32 `json:"elapsed"`
	Remaining *int32 `json:"remaining"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Data       struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	} `json:"data"`
}

type errorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
