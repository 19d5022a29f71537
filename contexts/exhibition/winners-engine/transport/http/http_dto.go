package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PrepareWinnersRequest struct {
	ExhibitionID string `json:"exhibition_id"`
}

type WinnerItem struct {
	ProjectID string  `json:"project_id"`
	Title     string  `json:"title"`
	OwnerID   string  `json:"owner_id"`
	OwnerName string  `json:"owner_name"`
	Score     float64 `json:"score"`
}

type NominationOutcome struct {
	NominationID string       `json:"nomination_id"`
	Title        string       `json:"title"`
	Outcome      string       `json:"outcome"`
	Winners      []WinnerItem `json:"winners,omitempty"`
}

type PrepareWinnersResponse struct {
	ExhibitionID      string              `json:"exhibition_id"`
	Committed         bool                `json:"committed"`
	NeedsConfirmation bool                `json:"needs_confirmation"`
	Nominations       []NominationOutcome `json:"nominations"`
}

type ConfirmStatsResponse struct {
	ExhibitionID       string              `json:"exhibition_id"`
	TotalNominations   int                 `json:"total_nominations"`
	WithWinners        int                 `json:"with_winners"`
	Undecided          int                 `json:"undecided"`
	Conflicted         int                 `json:"conflicted"`
	ExistingWinners    int                 `json:"existing_winners"`
	DroppedNominations []string            `json:"dropped_nominations,omitempty"`
	DroppedProjects    []string            `json:"dropped_projects,omitempty"`
	Nominations        []NominationOutcome `json:"nominations"`
}

type ConfirmWinnersRequest struct {
	// ManualSelection maps nomination id to the chosen project id for tied
	// nominations.
	ManualSelection map[string]string `json:"manual_selection,omitempty"`
}

type ConfirmWinnersResponse struct {
	Confirmed bool `json:"confirmed"`
}

type ScoreboardSummary struct {
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	JuryTotal   int     `json:"jury_total"`
	JuryAverage float64 `json:"jury_average"`
	JuryCount   int     `json:"jury_count"`
}

type ScoreboardNomination struct {
	NominationID string              `json:"nomination_id"`
	Title        string              `json:"title"`
	Projects     []ScoreboardSummary `json:"projects"`
}

type ScoreboardResponse struct {
	ExhibitionID string                 `json:"exhibition_id"`
	Title        string                 `json:"title"`
	JurorCount   int                    `json:"juror_count"`
	Nominations  []ScoreboardNomination `json:"nominations"`
}

type ReportRankedProject struct {
	ProjectID  string         `json:"project_id"`
	Title      string         `json:"title"`
	OwnerName  string         `json:"owner_name"`
	JuryScores map[string]int `json:"jury_scores"`
	TotalScore int            `json:"total_score"`
	HasRatings bool           `json:"has_ratings"`
}

type ReportNomination struct {
	NominationID  string                `json:"nomination_id"`
	Title         string                `json:"title"`
	ProjectCount  int                   `json:"project_count"`
	TotalScore    int                   `json:"total_score"`
	JuryTotals    map[string]int        `json:"jury_totals"`
	JuryCounts    map[string]int        `json:"jury_counts"`
	TopProjects   []ReportRankedProject `json:"top_projects"`
	OtherProjects []ReportRankedProject `json:"other_projects"`
	Winners       []WinnerItem          `json:"winners,omitempty"`
}

type ReportJurorActivity struct {
	JurorID      string `json:"juror_id"`
	Name         string `json:"name"`
	RatingsCount int    `json:"ratings_count"`
	RatingsSum   int    `json:"ratings_sum"`
}

type ReportNominationDebt struct {
	NominationID string `json:"nomination_id"`
	Title        string `json:"title"`
	Voted        int    `json:"voted"`
	Expected     int    `json:"expected"`
	Missing      int    `json:"missing"`
}

type ReportJurorDebt struct {
	JurorID      string                 `json:"juror_id"`
	Name         string                 `json:"name"`
	Nominations  []ReportNominationDebt `json:"nominations"`
	TotalMissing int                    `json:"total_missing"`
}

type ReportTotals struct {
	TotalJurors      int `json:"total_jurors"`
	TotalNominations int `json:"total_nominations"`
	TotalProjects    int `json:"total_projects"`
	TotalRatings     int `json:"total_ratings"`
}

type JuryReportResponse struct {
	ExhibitionID string                `json:"exhibition_id"`
	Title        string                `json:"title"`
	Jurors       []ReportJurorActivity `json:"jurors"`
	Nominations  []ReportNomination    `json:"nominations"`
	NotVoted     []ReportJurorDebt     `json:"not_voted"`
	Totals       ReportTotals          `json:"totals"`
}
