package httpapi

import (
	"bytes"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// decimalText accepts an amount as a JSON number or a JSON string and keeps its literal text,
// so 10.10 is never rounded through a float.
type decimalText string

func (d *decimalText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := sonic.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("amount must be a number or a numeric string: %w", err)
		}
		*d = decimalText(raw)
		return nil
	}
	*d = decimalText(trimmed)
	return nil
}

func (d *decimalText) ptr() *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

type pageDTO[T any] struct {
	Items      []T         `json:"items"`
	Pagination paging.Info `json:"pagination"`
}

func pageToDTO[S, T any](p paging.Page[S], convert func(S) T) pageDTO[T] {
	items := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, convert(item))
	}
	return pageDTO[T]{Items: items, Pagination: p.Info}
}

func sliceToDTO[S, T any](in []S, convert func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, item := range in {
		out = append(out, convert(item))
	}
	return out
}

func amountText(d decimal.Decimal) string {
	return d.StringFixed(finance.AmountDecimals)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func userToDTO(u user.User) userDTO {
	out := userDTO{ID: u.ID, Email: u.Email, Role: string(u.Role)}
	if !u.CreatedAt.IsZero() {
		out.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func principalToDTO(p user.Principal) userDTO {
	return userDTO{ID: p.UserID, Email: p.Email, Role: string(p.Role)}
}

type userOverviewDTO struct {
	userDTO
	Athlete *linkedAthleteDTO `json:"athlete,omitempty"`
}

type linkedAthleteDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func userOverviewToDTO(o user.Overview) userOverviewDTO {
	out := userOverviewDTO{userDTO: userToDTO(o.User)}
	if o.HasAthlete() {
		out.Athlete = &linkedAthleteDTO{ID: o.AthleteID, Name: o.AthleteName, IsActive: o.AthleteActive}
	}
	return out
}

type athleteDTO struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email,omitempty"`
	BillingType        string   `json:"billingType"`
	PreferredPositions []string `json:"preferredPositions"`
	IsActive           bool     `json:"isActive"`
	UserID             string   `json:"userId,omitempty"`
}

func athleteToDTO(a athlete.Athlete) athleteDTO {
	positions := make([]string, 0, len(a.PreferredPositions))
	for _, p := range a.PreferredPositions {
		positions = append(positions, string(p))
	}
	return athleteDTO{
		ID:                 a.ID,
		Name:               a.Name,
		Email:              a.Email,
		BillingType:        string(a.BillingType),
		PreferredPositions: positions,
		IsActive:           a.IsActive,
		UserID:             a.UserID,
	}
}

type athleteListingDTO struct {
	athleteDTO
	UserEmail          string `json:"userEmail,omitempty"`
	UserRole           string `json:"userRole,omitempty"`
	ConfirmationCount  int    `json:"confirmationCount"`
	ParticipationCount int    `json:"participationCount"`
	PendingCount       int    `json:"pendingCount"`
}

func athleteListingToDTO(l athlete.Listing) athleteListingDTO {
	return athleteListingDTO{
		athleteDTO:         athleteToDTO(l.Athlete),
		UserEmail:          l.UserEmail,
		UserRole:           l.UserRole,
		ConfirmationCount:  l.ConfirmationCount,
		ParticipationCount: l.ParticipationCount,
		PendingCount:       l.PendingCount,
	}
}

type placeDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func placeToDTO(p place.Place) placeDTO {
	return placeDTO{ID: p.ID, Name: p.Name, Address: p.Address}
}

type matchDTO struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	PlaceID string `json:"placeId"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{ID: m.ID, Date: formatDate(m.Date), Time: m.Time, PlaceID: m.PlaceID}
}

type matchListingDTO struct {
	matchDTO
	Place               placeDTO `json:"place"`
	ConfirmationCount   int      `json:"confirmationCount"`
	ParticipationCount  int      `json:"participationCount"`
	ConfirmedAthleteIDs []string `json:"confirmedAthleteIds"`
}

func matchListingToDTO(l match.Listing) matchListingDTO {
	confirmed := l.ConfirmedAthleteIDs
	if confirmed == nil {
		confirmed = []string{}
	}
	return matchListingDTO{
		matchDTO:            matchToDTO(l.Match),
		Place:               placeToDTO(l.Place),
		ConfirmationCount:   l.ConfirmationCount,
		ParticipationCount:  l.ParticipationCount,
		ConfirmedAthleteIDs: confirmed,
	}
}

type matchListingPayloadDTO struct {
	Matches pageDTO[matchListingDTO] `json:"matches"`
	Places  []placeDTO               `json:"places"`
	Athlete *athleteDTO              `json:"athlete"`
}

func matchListingPayloadToDTO(l usecase.MatchListing) matchListingPayloadDTO {
	out := matchListingPayloadDTO{
		Matches: pageToDTO(l.Matches, matchListingToDTO),
		Places:  sliceToDTO(l.Places, placeToDTO),
	}
	if l.Athlete != nil {
		a := athleteToDTO(*l.Athlete)
		out.Athlete = &a
	}
	return out
}

type presenceDTO struct {
	AthleteID string `json:"athleteId"`
	MatchID   string `json:"matchId"`
	Confirmed bool   `json:"confirmed"`
}

type pendingDTO struct {
	ID          string  `json:"id"`
	AthleteID   string  `json:"athleteId"`
	AthleteName string  `json:"athleteName,omitempty"`
	Amount      string  `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	PaymentDate *string `json:"paymentDate"`
}

func pendingToDTO(p finance.Pending) pendingDTO {
	out := pendingDTO{
		ID:          p.ID,
		AthleteID:   p.AthleteID,
		AthleteName: p.AthleteName,
		Amount:      amountText(p.Amount),
		DueDate:     formatDate(p.DueDate),
		Description: p.Description,
		Status:      string(p.Status),
	}
	if p.PaymentDate != nil {
		paid := formatDate(*p.PaymentDate)
		out.PaymentDate = &paid
	}
	return out
}

type cashFlowDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

func cashFlowToDTO(c finance.CashFlow) cashFlowDTO {
	return cashFlowDTO{
		ID:          c.ID,
		Description: c.Description,
		Amount:      amountText(c.Amount),
		Type:        string(c.Type),
		Date:        formatDate(c.Date),
	}
}

type summaryDTO struct {
	PendingAmount string `json:"pendingAmount"`
	PendingCount  int    `json:"pendingCount"`
	PaidAmount    string `json:"paidAmount"`
	PaidCount     int    `json:"paidCount"`
	TotalInflow   string `json:"totalInflow"`
	TotalOutflow  string `json:"totalOutflow"`
	Balance       string `json:"balance"`
}

func summaryToDTO(s finance.Summary) summaryDTO {
	return summaryDTO{
		PendingAmount: amountText(s.PendingAmount),
		PendingCount:  s.PendingCount,
		PaidAmount:    amountText(s.PaidAmount),
		PaidCount:     s.PaidCount,
		TotalInflow:   amountText(s.TotalInflow),
		TotalOutflow:  amountText(s.TotalOutflow),
		Balance:       amountText(s.Balance),
	}
}

type financeOverviewDTO struct {
	Pendencies pageDTO[pendingDTO]  `json:"pendencies"`
	CashFlows  pageDTO[cashFlowDTO] `json:"cashFlows"`
	Summary    summaryDTO           `json:"summary"`
	Athletes   []athleteDTO         `json:"athletes"`
}

func financeOverviewToDTO(o usecase.FinanceOverview) financeOverviewDTO {
	return financeOverviewDTO{
		Pendencies: pageToDTO(o.Pendencies, pendingToDTO),
		CashFlows:  pageToDTO(o.CashFlows, cashFlowToDTO),
		Summary:    summaryToDTO(o.Summary),
		Athletes:   sliceToDTO(o.Athletes, athleteToDTO),
	}
}

type athleteStatementDTO struct {
	Athlete    athleteDTO   `json:"athlete"`
	Pendencies []pendingDTO `json:"pendencies"`
	Summary    summaryDTO   `json:"summary"`
}

func athleteStatementToDTO(s usecase.AthleteStatement) athleteStatementDTO {
	return athleteStatementDTO{
		Athlete:    athleteToDTO(s.Athlete),
		Pendencies: sliceToDTO(s.Pendencies, pendingToDTO),
		Summary:    summaryToDTO(s.Summary),
	}
}

type dashboardDTO struct {
	User            userDTO     `json:"user"`
	Sections        []string    `json:"sections"`
	ActiveAthletes  int         `json:"activeAthletes"`
	UpcomingMatches int         `json:"upcomingMatches"`
	Summary         *summaryDTO `json:"summary"`
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	out := dashboardDTO{
		User:            principalToDTO(d.User),
		Sections:        make([]string, 0, len(d.Sections)),
		ActiveAthletes:  d.ActiveAthletes,
		UpcomingMatches: d.UpcomingMatches,
	}
	for _, section := range d.Sections {
		out.Sections = append(out.Sections, string(section))
	}
	if d.Summary != nil {
		summary := summaryToDTO(*d.Summary)
		out.Summary = &summary
	}
	return out
}
