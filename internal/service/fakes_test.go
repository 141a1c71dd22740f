package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
)

// In-memory fakes backing the service tests. IDs are assigned
// sequentially on create; missing lookups return pgx.ErrNoRows like the
// real repositories.

type fakeChildRepo struct {
	children map[string]*domain.Child
	seq      int
}

func newFakeChildRepo() *fakeChildRepo {
	return &fakeChildRepo{children: map[string]*domain.Child{}}
}

func (f *fakeChildRepo) Create(_ context.Context, child *domain.Child) error {
	f.seq++
	child.ID = fmt.Sprintf("child-%d", f.seq)
	child.CreatedAt = time.Now()
	child.UpdatedAt = child.CreatedAt
	copied := *child
	f.children[child.ID] = &copied
	return nil
}

func (f *fakeChildRepo) Update(_ context.Context, child *domain.Child) error {
	if _, ok := f.children[child.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *child
	f.children[child.ID] = &copied
	return nil
}

func (f *fakeChildRepo) GetByID(_ context.Context, id string) (*domain.Child, error) {
	child, ok := f.children[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *child
	return &copied, nil
}

func (f *fakeChildRepo) GetByReference(_ context.Context, reference string) (*domain.Child, error) {
	for _, child := range f.children {
		if child.ReferenceCode == reference {
			copied := *child
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeChildRepo) List(_ context.Context, _ repository.ChildFilter) ([]domain.Child, error) {
	result := make([]domain.Child, 0, len(f.children))
	for _, child := range f.children {
		result = append(result, *child)
	}
	return result, nil
}

type fakeOrgRepo struct {
	orgs map[string]*domain.CareOrganization
	seq  int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[string]*domain.CareOrganization{}}
}

func (f *fakeOrgRepo) Create(_ context.Context, org *domain.CareOrganization) error {
	f.seq++
	org.ID = fmt.Sprintf("org-%d", f.seq)
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	copied := *org
	f.orgs[org.ID] = &copied
	return nil
}

func (f *fakeOrgRepo) Update(_ context.Context, org *domain.CareOrganization) error {
	if _, ok := f.orgs[org.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *org
	f.orgs[org.ID] = &copied
	return nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*domain.CareOrganization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *org
	return &copied, nil
}

func (f *fakeOrgRepo) List(_ context.Context, filter repository.OrganizationFilter) ([]domain.CareOrganization, error) {
	result := make([]domain.CareOrganization, 0, len(f.orgs))
	for _, org := range f.orgs {
		if filter.Active != nil && org.Active != *filter.Active {
			continue
		}
		result = append(result, *org)
	}
	return result, nil
}

type fakeRequestRepo struct {
	requests map[string]*domain.PlacementRequest
	seq      int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*domain.PlacementRequest{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.PlacementRequest) error {
	f.seq++
	request.ID = fmt.Sprintf("request-%d", f.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) Update(_ context.Context, request *domain.PlacementRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*domain.PlacementRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ repository.PlacementRequestFilter) ([]domain.PlacementRequest, error) {
	result := make([]domain.PlacementRequest, 0, len(f.requests))
	for _, request := range f.requests {
		result = append(result, *request)
	}
	return result, nil
}

type fakePlacementRepo struct {
	placements map[string]*domain.Placement
	seq        int
}

func newFakePlacementRepo() *fakePlacementRepo {
	return &fakePlacementRepo{placements: map[string]*domain.Placement{}}
}

func (f *fakePlacementRepo) Create(_ context.Context, placement *domain.Placement) error {
	f.seq++
	placement.ID = fmt.Sprintf("placement-%d", f.seq)
	placement.CreatedAt = time.Now()
	placement.UpdatedAt = placement.CreatedAt
	copied := *placement
	f.placements[placement.ID] = &copied
	return nil
}

func (f *fakePlacementRepo) Update(_ context.Context, placement *domain.Placement) error {
	if _, ok := f.placements[placement.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *placement
	f.placements[placement.ID] = &copied
	return nil
}

func (f *fakePlacementRepo) GetByID(_ context.Context, id string) (*domain.Placement, error) {
	placement, ok := f.placements[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *placement
	return &copied, nil
}

func (f *fakePlacementRepo) GetOpenByChild(_ context.Context, childID string) (*domain.Placement, error) {
	for _, placement := range f.placements {
		if placement.ChildID == childID && !placement.IsTerminal() {
			copied := *placement
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePlacementRepo) List(_ context.Context, _ repository.PlacementFilter) ([]domain.Placement, error) {
	result := make([]domain.Placement, 0, len(f.placements))
	for _, placement := range f.placements {
		result = append(result, *placement)
	}
	return result, nil
}

type fakeFeeRepo struct {
	fees []domain.PlacementFee
	seq  int
}

func (f *fakeFeeRepo) Create(_ context.Context, fee *domain.PlacementFee) error {
	f.seq++
	fee.ID = fmt.Sprintf("fee-%d", f.seq)
	fee.CreatedAt = time.Now()
	f.fees = append(f.fees, *fee)
	return nil
}

func (f *fakeFeeRepo) ListByPlacement(_ context.Context, placementID string) ([]domain.PlacementFee, error) {
	var result []domain.PlacementFee
	for _, fee := range f.fees {
		if fee.PlacementID == placementID {
			result = append(result, fee)
		}
	}
	return result, nil
}

type fakeReviewRepo struct {
	reviews map[string]*domain.PlacementReview
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*domain.PlacementReview{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.PlacementReview) error {
	f.seq++
	review.ID = fmt.Sprintf("review-%d", f.seq)
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *domain.PlacementReview) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*domain.PlacementReview, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *review
	return &copied, nil
}

func (f *fakeReviewRepo) ListByPlacement(_ context.Context, placementID string) ([]domain.PlacementReview, error) {
	var result []domain.PlacementReview
	for _, review := range f.reviews {
		if review.PlacementID == placementID {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) ListOverdue(_ context.Context, asOf time.Time) ([]domain.PlacementReview, error) {
	var result []domain.PlacementReview
	for _, review := range f.reviews {
		if review.IsOverdue(asOf) {
			result = append(result, *review)
		}
	}
	return result, nil
}

type fakeAgreementRepo struct {
	agreements map[string]*domain.PlacementAgreement
	seq        int
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{agreements: map[string]*domain.PlacementAgreement{}}
}

func (f *fakeAgreementRepo) Create(_ context.Context, agreement *domain.PlacementAgreement) error {
	f.seq++
	agreement.ID = fmt.Sprintf("agreement-%d", f.seq)
	agreement.CreatedAt = time.Now()
	agreement.UpdatedAt = agreement.CreatedAt
	copied := *agreement
	f.agreements[agreement.ID] = &copied
	return nil
}

func (f *fakeAgreementRepo) Update(_ context.Context, agreement *domain.PlacementAgreement) error {
	if _, ok := f.agreements[agreement.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *agreement
	f.agreements[agreement.ID] = &copied
	return nil
}

func (f *fakeAgreementRepo) GetByID(_ context.Context, id string) (*domain.PlacementAgreement, error) {
	agreement, ok := f.agreements[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *agreement
	return &copied, nil
}

func (f *fakeAgreementRepo) ListByPlacement(_ context.Context, placementID string) ([]domain.PlacementAgreement, error) {
	var result []domain.PlacementAgreement
	for _, agreement := range f.agreements {
		if agreement.PlacementID == placementID {
			result = append(result, *agreement)
		}
	}
	return result, nil
}

type fakeEmployeeRepo struct {
	profiles map[string]*domain.EmployeeProfile
	seq      int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{profiles: map[string]*domain.EmployeeProfile{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, profile *domain.EmployeeProfile) error {
	f.seq++
	profile.ID = fmt.Sprintf("employee-%d", f.seq)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, profile *domain.EmployeeProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.EmployeeProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeEmployeeRepo) GetByStaffID(_ context.Context, staffID string) (*domain.EmployeeProfile, error) {
	for _, profile := range f.profiles {
		if profile.StaffID == staffID {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ repository.EmployeeFilter) ([]domain.EmployeeProfile, error) {
	result := make([]domain.EmployeeProfile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		result = append(result, *profile)
	}
	return result, nil
}

type fakeTimeOffRepo struct {
	requests map[string]*domain.TimeOffRequest
	seq      int
}

func newFakeTimeOffRepo() *fakeTimeOffRepo {
	return &fakeTimeOffRepo{requests: map[string]*domain.TimeOffRequest{}}
}

func (f *fakeTimeOffRepo) Create(_ context.Context, request *domain.TimeOffRequest) error {
	f.seq++
	request.ID = fmt.Sprintf("timeoff-%d", f.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeTimeOffRepo) Update(_ context.Context, request *domain.TimeOffRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeTimeOffRepo) GetByID(_ context.Context, id string) (*domain.TimeOffRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (f *fakeTimeOffRepo) ListByEmployee(_ context.Context, employeeID string, _, _ int) ([]domain.TimeOffRequest, error) {
	var result []domain.TimeOffRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (f *fakeTimeOffRepo) ListOverlapping(_ context.Context, employeeID string, start, end time.Time) ([]domain.TimeOffRequest, error) {
	var result []domain.TimeOffRequest
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || request.Status == domain.TimeOffStatusDenied {
			continue
		}
		if request.Overlaps(start, end) {
			result = append(result, *request)
		}
	}
	return result, nil
}

type fakeShiftSwapRepo struct {
	swaps map[string]*domain.ShiftSwap
	seq   int
}

func newFakeShiftSwapRepo() *fakeShiftSwapRepo {
	return &fakeShiftSwapRepo{swaps: map[string]*domain.ShiftSwap{}}
}

func (f *fakeShiftSwapRepo) Create(_ context.Context, swap *domain.ShiftSwap) error {
	f.seq++
	swap.ID = fmt.Sprintf("swap-%d", f.seq)
	swap.CreatedAt = time.Now()
	swap.UpdatedAt = swap.CreatedAt
	copied := *swap
	f.swaps[swap.ID] = &copied
	return nil
}

func (f *fakeShiftSwapRepo) Update(_ context.Context, swap *domain.ShiftSwap) error {
	if _, ok := f.swaps[swap.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *swap
	f.swaps[swap.ID] = &copied
	return nil
}

func (f *fakeShiftSwapRepo) GetByID(_ context.Context, id string) (*domain.ShiftSwap, error) {
	swap, ok := f.swaps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *swap
	return &copied, nil
}

func (f *fakeShiftSwapRepo) List(_ context.Context, _ repository.ShiftSwapFilter) ([]domain.ShiftSwap, error) {
	result := make([]domain.ShiftSwap, 0, len(f.swaps))
	for _, swap := range f.swaps {
		result = append(result, *swap)
	}
	return result, nil
}

type fakeMedicationRepo struct {
	records map[string]*domain.MedicationRecord
	seq     int
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{records: map[string]*domain.MedicationRecord{}}
}

func (f *fakeMedicationRepo) Create(_ context.Context, record *domain.MedicationRecord) error {
	f.seq++
	record.ID = fmt.Sprintf("medication-%d", f.seq)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	copied := *record
	f.records[record.ID] = &copied
	return nil
}

func (f *fakeMedicationRepo) Update(_ context.Context, record *domain.MedicationRecord) error {
	if _, ok := f.records[record.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *record
	f.records[record.ID] = &copied
	return nil
}

func (f *fakeMedicationRepo) GetByID(_ context.Context, id string) (*domain.MedicationRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *record
	return &copied, nil
}

func (f *fakeMedicationRepo) ListByChild(_ context.Context, childID string, activeOnly bool) ([]domain.MedicationRecord, error) {
	var result []domain.MedicationRecord
	for _, record := range f.records {
		if record.ChildID != childID {
			continue
		}
		if activeOnly && record.Status != domain.MedicationStatusActive {
			continue
		}
		result = append(result, *record)
	}
	// Deterministic creation order.
	sort.Slice(result, func(i, j int) bool {
		if len(result[i].ID) != len(result[j].ID) {
			return len(result[i].ID) < len(result[j].ID)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type fakeStaffRepo struct {
	staff map[string]*domain.StaffMember
	seq   int
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: map[string]*domain.StaffMember{}}
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	f.seq++
	staff.ID = fmt.Sprintf("staff-%d", f.seq)
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt
	copied := *staff
	f.staff[staff.ID] = &copied
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	if _, ok := f.staff[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *staff
	f.staff[staff.ID] = &copied
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	staff, ok := f.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, staff := range f.staff {
		if staff.Email == email {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	result := make([]domain.StaffMember, 0, len(f.staff))
	for _, staff := range f.staff {
		if filter.Role != nil && staff.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && staff.Active != *filter.Active {
			continue
		}
		result = append(result, *staff)
	}
	return result, nil
}

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	seq    int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*repository.PasswordResetToken{}}
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	f.seq++
	token.ID = fmt.Sprintf("reset-%d", f.seq)
	token.CreatedAt = time.Now()
	copied := *token
	f.tokens[token.ID] = &copied
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	for _, token := range f.tokens {
		if token.Token == tokenStr {
			copied := *token
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	token, ok := f.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

type fakePocketMoneyRepo struct {
	disbursements []domain.PocketMoneyDisbursement
	seq           int
}

func (f *fakePocketMoneyRepo) Create(_ context.Context, d *domain.PocketMoneyDisbursement) error {
	f.seq++
	d.ID = fmt.Sprintf("disbursement-%d", f.seq)
	d.CreatedAt = time.Now()
	f.disbursements = append(f.disbursements, *d)
	return nil
}

func (f *fakePocketMoneyRepo) GetByChildWeek(_ context.Context, childID string, week, year int) (*domain.PocketMoneyDisbursement, error) {
	for _, d := range f.disbursements {
		if d.ChildID == childID && d.WeekNumber == week && d.Year == year {
			copied := d
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePocketMoneyRepo) ListByChildYear(_ context.Context, childID string, year int) ([]domain.PocketMoneyDisbursement, error) {
	var result []domain.PocketMoneyDisbursement
	for _, d := range f.disbursements {
		if d.ChildID == childID && d.Year == year {
			result = append(result, d)
		}
	}
	return result, nil
}
