package model

// CrewDetail is the JSON shape of a crew member. Expeditions carries ids only.
type CrewDetail struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Country        *string  `json:"country"`
	CountryFlag    *string  `json:"country_flag"`
	Gender         string   `json:"gender"`
	IsAlive        string   `json:"is_alive"`
	Specialization string   `json:"specialization"`
	TimeInSpace    string   `json:"time_in_space"`
	TotalEVAs      *float64 `json:"total_evas"`
	TotalEVATime   string   `json:"total_eva_time"`
	Status         string   `json:"status"`
	PhotoURL       string   `json:"photo_url"`
	About          string   `json:"about"`
	BirthYear      *int     `json:"birth_year"`
	Age            *int     `json:"age"`
	Expeditions    []int    `json:"expeditions"`
}

// AstronautDetail is the single-astronaut response: the crew projection plus
// every expedition expanded.
type AstronautDetail struct {
	CrewDetail
	ExpeditionsDetails []ExpeditionDetail `json:"expeditions_details"`
}

type ExpeditionDetail struct {
	ID       int          `json:"id"`
	Began    string       `json:"began"`
	Ended    string       `json:"ended"`
	Duration string       `json:"duration"`
	Distance string       `json:"distance"`
	Orbits   string       `json:"orbits"`
	CrewSize string       `json:"crew_size"`
	Crew     []CrewDetail `json:"crew"`
}

// NewCrewDetail projects c. Country and Expeditions must already be loaded.
func NewCrewDetail(c *Crew, currentYear int) CrewDetail {
	d := CrewDetail{
		ID:             c.ID,
		Name:           c.Name,
		Gender:         c.Gender,
		IsAlive:        c.IsAlive,
		Specialization: c.Specialization,
		TimeInSpace:    c.TimeInSpace,
		TotalEVAs:      c.TotalEVAs,
		TotalEVATime:   c.TotalEVATime,
		Status:         c.Status,
		PhotoURL:       c.PhotoURL,
		About:          c.About,
		BirthYear:      c.BirthYear,
		Age:            c.Derive(currentYear).Age,
		Expeditions:    ExpeditionIDs(c.Expeditions),
	}
	if c.Country != nil {
		name, flag := c.Country.Name, c.Country.FlagURL
		d.Country = &name
		d.CountryFlag = &flag
	}
	return d
}

// NewExpeditionDetail projects e together with its crew roster.
func NewExpeditionDetail(e *Expedition, currentYear int) ExpeditionDetail {
	crew := make([]CrewDetail, 0, len(e.Crew))
	for i := range e.Crew {
		crew = append(crew, NewCrewDetail(&e.Crew[i], currentYear))
	}

	return ExpeditionDetail{
		ID:       e.ID,
		Began:    e.Began,
		Ended:    e.Ended,
		Duration: e.Duration,
		Distance: e.Distance,
		Orbits:   e.Orbits,
		CrewSize: e.CrewSize,
		Crew:     crew,
	}
}

// NewAstronautDetail projects c and expands its expeditions, which must carry
// their crew rosters.
func NewAstronautDetail(c *Crew, currentYear int) AstronautDetail {
	details := make([]ExpeditionDetail, 0, len(c.Expeditions))
	for i := range c.Expeditions {
		details = append(details, NewExpeditionDetail(&c.Expeditions[i], currentYear))
	}

	return AstronautDetail{
		CrewDetail:         NewCrewDetail(c, currentYear),
		ExpeditionsDetails: details,
	}
}
