package entities

// RankedProject is one row of the jury control report: a project with its
// per-juror scores. A juror id absent from JuryScores means that juror has
// not rated the project.
type RankedProject struct {
	Project    Project
	JuryScores map[string]int
	TotalScore int
	HasRatings bool
}

// NominationReport ranks a nomination's projects by total jury score and
// splits them into a top-N subset and the rest.
type NominationReport struct {
	Nomination    Nomination
	ProjectCount  int
	TopProjects   []RankedProject
	OtherProjects []RankedProject
	Winners       []WinnerCandidate
	TotalScore    int
	JuryTotals    map[string]int
	JuryCounts    map[string]int
}

// JurorActivity is the overall rating volume of one juror across the
// exhibition.
type JurorActivity struct {
	Juror        Juror
	RatingsCount int
	RatingsSum   int
}

// NominationDebt counts a juror's missing scores inside one nomination.
type NominationDebt struct {
	Nomination Nomination
	Voted      int
	Expected   int
	Missing    int
}

// JurorDebt lists every nomination a juror has not finished voting in.
// Jurors with TotalMissing == 0 never appear in a report.
type JurorDebt struct {
	Juror        Juror
	Nominations  []NominationDebt
	TotalMissing int
}

type ReportTotals struct {
	TotalJurors      int
	TotalNominations int
	TotalProjects    int
	TotalRatings     int
}

// JuryReport is the full audit view staff use to see who has not finished
// voting and where, independent of whether winners were determined.
type JuryReport struct {
	Exhibition  Exhibition
	Jurors      []Juror
	Nominations []NominationReport
	JuryStats   []JurorActivity
	NotVoted    []JurorDebt
	Totals      ReportTotals
}
