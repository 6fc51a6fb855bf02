package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// Payout reasons recorded alongside transfers.
const (
	ReasonExcessRefund = "excess_refund"
	ReasonWithdraw     = "withdraw"
	ReasonRefund       = "refund"
	ReasonClaim        = "claim"
)

// State bundles the mutable ledger tables. LastSeq is the sequence number of
// the newest notification reflected in them.
type State struct {
	Projects      *ProjectStore
	Contributions *ContributionTable
	Rewards       *RewardLedger
	LastSeq       uint64
}

// NewState returns empty tables.
func NewState() *State {
	return &State{
		Projects:      NewProjectStore(),
		Contributions: NewContributionTable(),
		Rewards:       NewRewardLedger(),
	}
}

// Engine is the funding state machine. Every operation runs under a single
// lock, so operations are serializable with respect to each other. An
// operation first settles its payouts and commits its notifications to the
// journal, and only then touches the tables; any failure before that point
// leaves the ledger unchanged.
type Engine struct {
	mu      sync.RWMutex
	state   *State
	sink    Sink
	payouts Payouts
	journal Journal
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSink sets where notifications are emitted.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithState starts the engine from previously restored tables.
func WithState(st *State) Option {
	return func(e *Engine) {
		if st != nil {
			e.state = st
		}
	}
}

// WithJournal commits every operation to j before it is applied.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// New builds an engine paying out through payouts. payouts may be nil when a
// Journal is configured; payouts are then settled by the journal commit.
func New(payouts Payouts, opts ...Option) *Engine {
	e := &Engine{
		state:   NewState(),
		sink:    NewLog(),
		payouts: payouts,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) clock() time.Time {
	return e.now().UTC().Truncate(time.Second)
}

func (e *Engine) pay(ctx context.Context, p domain.Payout) error {
	if e.payouts == nil {
		if e.journal != nil {
			return nil
		}
		return fmt.Errorf("%w: no payout rail configured", domain.ErrTransferFailed)
	}
	if err := e.payouts.Pay(ctx, p); err != nil {
		e.logger.Error().Err(err).
			Str("kind", string(p.Kind)).
			Str("to", string(p.To)).
			Str("reason", p.Reason).
			Msg("ledger: payout failed")
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	return nil
}

// commit settles payouts, numbers notes and stores both in the journal. The
// caller applies the operation to the tables only when commit succeeds, then
// calls publish.
func (e *Engine) commit(ctx context.Context, payouts []domain.Payout, notes []domain.Notification) error {
	for _, p := range payouts {
		if err := e.pay(ctx, p); err != nil {
			return err
		}
	}
	seq := e.state.LastSeq
	for i := range notes {
		seq++
		notes[i].Seq = seq
	}
	if e.journal == nil {
		return nil
	}
	if err := e.journal.Commit(ctx, notes, payouts); err != nil {
		ev := e.logger.Error().Err(err).Uint64("seq", notes[0].Seq).Str("kind", string(notes[0].Kind))
		if len(payouts) > 0 {
			if e.payouts != nil {
				ev = ev.Bool("rail_paid", true)
			}
			ev.Msg("ledger: journal commit failed")
			return fmt.Errorf("%w: %w: %w", domain.ErrTransferFailed, domain.ErrJournalFailed, err)
		}
		ev.Msg("ledger: journal commit failed")
		return fmt.Errorf("%w: %w", domain.ErrJournalFailed, err)
	}
	return nil
}

func (e *Engine) publish(notes []domain.Notification) {
	for _, n := range notes {
		e.state.LastSeq = n.Seq
		e.sink.Emit(n)
	}
}

// CreateProject opens a new campaign owned by owner and returns its id.
func (e *Engine) CreateProject(ctx context.Context, owner domain.Principal, name, description string, goal domain.Amount, days uint32) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if owner == "" {
		return 0, domain.ErrInvalidPrincipal
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	p, err := e.state.Projects.draft(owner, name, description, goal, days, now)
	if err != nil {
		return 0, err
	}
	notes := []domain.Notification{{
		Kind:        domain.KindCreate,
		ProjectID:   p.ID,
		Principal:   owner,
		Name:        p.Name,
		Description: p.Description,
		FundGoal:    p.FundGoal,
		EndTime:     p.EndTime,
		At:          now,
	}}
	if err := e.commit(ctx, nil, notes); err != nil {
		return 0, err
	}

	e.state.Projects.insert(p)
	e.publish(notes)
	e.logger.Debug().Uint64("project_id", p.ID).Str("owner", string(owner)).Msg("ledger: project created")
	return p.ID, nil
}

// Donate pledges amount from donor. Anything beyond the remaining room is
// paid straight back to the donor and the project completes.
func (e *Engine) Donate(ctx context.Context, projectID uint64, donor domain.Principal, amount domain.Amount) (domain.DonationReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.DonationReceipt{}, err
	}
	if donor == "" {
		return domain.DonationReceipt{}, domain.ErrInvalidPrincipal
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.state.Projects.lookup(projectID)
	if err != nil {
		return domain.DonationReceipt{}, err
	}
	if p.IsEnded {
		return domain.DonationReceipt{}, domain.ErrProjectEnded
	}
	if amount == 0 {
		return domain.DonationReceipt{}, domain.ErrInvalidAmount
	}

	receipt := domain.DonationReceipt{
		ProjectID: projectID,
		Donor:     donor,
		Offered:   amount,
		Accepted:  amount,
	}
	if room := p.Room(); amount >= room {
		receipt.Accepted = room
		receipt.Refunded = amount - room
		receipt.Completed = true
	}

	now := e.clock()
	var payouts []domain.Payout
	if receipt.Refunded > 0 {
		pid := projectID
		payouts = append(payouts, domain.Payout{
			Kind:      domain.PayoutTransfer,
			To:        donor,
			Amount:    receipt.Refunded,
			ProjectID: &pid,
			Reason:    ReasonExcessRefund,
			CreatedAt: now,
		})
	}
	notes := []domain.Notification{{
		Kind:      domain.KindDonation,
		ProjectID: projectID,
		Principal: donor,
		Amount:    receipt.Accepted,
		At:        now,
	}}
	if receipt.Completed {
		notes = append(notes, domain.Notification{
			Kind:      domain.KindCampaignSuccess,
			ProjectID: projectID,
			Principal: p.Owner,
			Amount:    p.Balance + receipt.Accepted,
			At:        now,
		})
	}
	if err := e.commit(ctx, payouts, notes); err != nil {
		return domain.DonationReceipt{}, err
	}

	p.Balance += receipt.Accepted
	e.state.Contributions.add(projectID, donor, receipt.Accepted)
	if receipt.Completed {
		p.IsEnded = true
		p.IsSuccess = true
		e.logger.Debug().Uint64("project_id", projectID).Msg("ledger: goal reached")
	}
	e.publish(notes)
	return receipt, nil
}

// CloseProject ends a campaign whose deadline has passed. It never marks a
// project successful and is a no-op on projects that already ended.
func (e *Engine) CloseProject(ctx context.Context, projectID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.state.Projects.lookup(projectID)
	if err != nil {
		return err
	}
	if p.IsEnded {
		return nil
	}
	now := e.clock()
	if now.Before(p.EndTime) {
		return domain.ErrNotYetDue
	}
	notes := []domain.Notification{{
		Kind:      domain.KindClosed,
		ProjectID: projectID,
		At:        now,
	}}
	if err := e.commit(ctx, nil, notes); err != nil {
		return err
	}

	p.IsEnded = true
	e.publish(notes)
	e.logger.Debug().Uint64("project_id", projectID).Msg("ledger: project closed")
	return nil
}

// Withdraw pays a successful project's balance to its owner and credits
// every donor with reward tokens proportional to their contribution.
func (e *Engine) Withdraw(ctx context.Context, projectID uint64, caller domain.Principal) (domain.Amount, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.state.Projects.lookup(projectID)
	if err != nil {
		return 0, err
	}
	if caller != p.Owner {
		return 0, domain.ErrNotOwner
	}
	if !p.IsSuccess {
		return 0, domain.ErrNotCompleted
	}
	if p.Withdrawn {
		return 0, domain.ErrAlreadyWithdrawn
	}

	now := e.clock()
	pid := projectID
	payouts := []domain.Payout{{
		Kind:      domain.PayoutTransfer,
		To:        p.Owner,
		Amount:    p.Balance,
		ProjectID: &pid,
		Reason:    ReasonWithdraw,
		CreatedAt: now,
	}}
	notes := []domain.Notification{{
		Kind:      domain.KindWithdraw,
		ProjectID: projectID,
		Principal: p.Owner,
		Amount:    p.Balance,
		At:        now,
	}}
	if err := e.commit(ctx, payouts, notes); err != nil {
		return 0, err
	}

	p.Withdrawn = true
	accrueRewards(e.state, projectID)
	e.publish(notes)
	e.logger.Debug().Uint64("project_id", projectID).Stringer("amount", p.Balance).Msg("ledger: funds withdrawn")
	return p.Balance, nil
}

func accrueRewards(st *State, projectID uint64) {
	for _, d := range st.Contributions.donors[projectID] {
		st.Rewards.credit(d, domain.RewardTokens(st.Contributions.Get(projectID, d)))
	}
}

// Refund returns the caller's contribution to a failed project.
func (e *Engine) Refund(ctx context.Context, projectID uint64, caller domain.Principal) (domain.Amount, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.state.Projects.lookup(projectID)
	if err != nil {
		return 0, err
	}
	if !p.IsEnded {
		return 0, domain.ErrTimeNotElapsed
	}
	if p.IsSuccess {
		return 0, domain.ErrGoalMet
	}
	amount := e.state.Contributions.Get(projectID, caller)
	if amount == 0 {
		return 0, domain.ErrNotDonor
	}

	now := e.clock()
	pid := projectID
	payouts := []domain.Payout{{
		Kind:      domain.PayoutTransfer,
		To:        caller,
		Amount:    amount,
		ProjectID: &pid,
		Reason:    ReasonRefund,
		CreatedAt: now,
	}}
	notes := []domain.Notification{{
		Kind:      domain.KindRefund,
		ProjectID: projectID,
		Principal: caller,
		Amount:    amount,
		At:        now,
	}}
	if err := e.commit(ctx, payouts, notes); err != nil {
		return 0, err
	}

	e.state.Contributions.zero(projectID, caller)
	p.Balance -= amount
	e.publish(notes)
	return amount, nil
}

// ClaimTokens mints the principal's whole accrued reward balance and resets
// it to zero.
func (e *Engine) ClaimTokens(ctx context.Context, principal domain.Principal) (domain.Tokens, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tokens := e.state.Rewards.Balance(principal)
	if tokens == 0 {
		return 0, domain.ErrNothingToClaim
	}
	now := e.clock()
	payouts := []domain.Payout{{
		Kind:      domain.PayoutMint,
		To:        principal,
		Tokens:    tokens,
		Reason:    ReasonClaim,
		CreatedAt: now,
	}}
	notes := []domain.Notification{{
		Kind:      domain.KindTokensClaimed,
		Principal: principal,
		Tokens:    tokens,
		At:        now,
	}}
	if err := e.commit(ctx, payouts, notes); err != nil {
		return 0, err
	}

	e.state.Rewards.reset(principal)
	e.publish(notes)
	return tokens, nil
}

// Project returns a snapshot of one project.
func (e *Engine) Project(projectID uint64) (domain.Project, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Projects.Get(projectID)
}

// Projects returns snapshots of every project in id order.
func (e *Engine) Projects() []domain.Project {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Projects.List()
}

// Contribution returns the donor's net contribution to a project.
func (e *Engine) Contribution(projectID uint64, donor domain.Principal) (domain.Amount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, err := e.state.Projects.lookup(projectID); err != nil {
		return 0, err
	}
	return e.state.Contributions.Get(projectID, donor), nil
}

// Donors lists the project's distinct donors in first-contribution order.
func (e *Engine) Donors(projectID uint64) ([]domain.Principal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, err := e.state.Projects.lookup(projectID); err != nil {
		return nil, err
	}
	return e.state.Contributions.Donors(projectID), nil
}

// RewardBalance returns the principal's unclaimed reward tokens.
func (e *Engine) RewardBalance(principal domain.Principal) domain.Tokens {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Rewards.Balance(principal)
}
