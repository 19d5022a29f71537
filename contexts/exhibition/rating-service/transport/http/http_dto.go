package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RateRequest struct {
	ProjectID string `json:"project_id"`
	Stars     int    `json:"stars"`
}

type RateResponse struct {
	Score     int     `json:"score"`
	ScoreAvg  float64 `json:"score_avg"`
	Count     int     `json:"count"`
	IsJury    bool    `json:"is_jury"`
	IsNew     bool    `json:"is_new"`
	JuryCount int     `json:"jury_count"`
	JuryAvg   float64 `json:"jury_avg"`
}

type StatsResponse struct {
	ProjectID string  `json:"project_id"`
	Score     int     `json:"score"`
	ScoreAvg  float64 `json:"score_avg"`
	Count     int     `json:"count"`
	JuryScore int     `json:"jury_score"`
	JuryAvg   float64 `json:"jury_avg"`
	JuryCount int     `json:"jury_count"`
	UserStars int     `json:"user_stars,omitempty"`
}
