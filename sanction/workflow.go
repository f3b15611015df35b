// Package sanction implements the moderation sanction workflow: command
// intake, authorization, reason collection (inline or via a modal round
// trip), enforcement dispatch, audit logging and best-effort notifications.
//
// The workflow holds no mutable state of its own. A command that needs a
// reason modal ends its turn after writing a pending-sanction record; the
// later modal submission reconstructs everything from that record, so the
// two halves may run on different instances.
package sanction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sentinel-bot/cluster"
	"sentinel-bot/model"
	"sentinel-bot/permission"
	"sentinel-bot/store"
)

// Workflow orchestrates sanction invocations against the shared cluster
// state.
type Workflow struct {
	state    *cluster.State
	resolver *permission.Resolver
}

func NewWorkflow(state *cluster.State) *Workflow {
	return &Workflow{
		state:    state,
		resolver: permission.NewResolver(state.Cache()),
	}
}

// HandleCommand runs one sanction command invocation up to its first
// response: a denial, a reason modal, or, when an inline reason was given,
// the full enforcement. A returned error means the invocation could not be
// evaluated (for example a cache miss) and the user may simply retry.
func (w *Workflow) HandleCommand(ctx context.Context, cc *model.CommandContext) (*Response, error) {
	cmd, err := parseCommand(cc)
	if err != nil {
		return nil, err
	}
	if cc.GuildID == "" {
		return ephemeral("❌ This command can only be used in a server."), nil
	}
	if cmd.member == nil {
		return ephemeral(fmt.Sprintf("❌ %s is not a member of this server.", cmd.target.Username)), nil
	}

	author, err := w.resolver.ResolveActor(cc.GuildID, cc.User.ID, cc.Member.Roles)
	if err != nil {
		return nil, err
	}
	target, err := w.resolver.ResolveActor(cc.GuildID, cmd.target.ID, cmd.member.Roles)
	if err != nil {
		return nil, err
	}
	bot, err := w.resolver.ResolveCurrent(cc.GuildID)
	if err != nil {
		return nil, err
	}

	decision := permission.Authorize(author, target, bot, cmd.kind.RequiredPermissions())
	if !decision.Allowed() {
		log.Printf("Denied %s of %s by %s in guild %s: %s", cmd.kind, cmd.target.ID, cc.User.ID, cc.GuildID, decision)
		return ephemeral(denialMessage(decision, cmd)), nil
	}

	policy, err := w.state.Store().GuildPolicy(ctx, cc.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild policy: %w", err)
	}

	// Inline reason: no pending record, enforce right away.
	if cmd.reason != "" {
		req := &model.SanctionRequest{
			Kind:           cmd.kind,
			GuildID:        cc.GuildID,
			TargetID:       cmd.target.ID,
			TargetUsername: cmd.target.Username,
			AuthorID:       cc.User.ID,
			AuthorUsername: cc.User.Username,
			Reason:         cmd.reason,
			IssuedAt:       time.Now(),
		}
		return w.enforce(ctx, req, policy), nil
	}

	// Suspend: record the pending sanction and ask for a reason. The key is
	// derived from the interaction id, so a duplicate delivery of the same
	// command event trips ErrAlreadyExists.
	key := store.Key(cc.ID)
	pending := model.PendingSanction{
		Kind:           cmd.kind,
		TargetID:       cmd.target.ID,
		TargetUsername: cmd.target.Username,
		CreatedAt:      time.Now(),
	}
	if err := w.state.Pending().Create(ctx, key, pending); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Printf("Duplicate sanction command delivery for interaction %s", cc.ID)
			return ephemeral(expiredMessage), nil
		}
		return nil, fmt.Errorf("failed to create pending sanction: %w", err)
	}
	return &Response{
		Kind: ResponseModal,
		Modal: &ModalPrompt{
			CustomID:      key,
			Title:         modalTitle(cmd.kind, cmd.target.Username),
			RequireReason: policy.EnforceReason,
		},
	}, nil
}

// HandleModalSubmit resumes a suspended sanction when its reason modal is
// submitted. The pending record is the sole source of the original command
// state. Authorization is not re-run: an expired or already consumed record
// means the user has to re-invoke the command, so a sanction can never ride
// on privileges that were revoked after the original check.
func (w *Workflow) HandleModalSubmit(ctx context.Context, mc *model.ModalContext) (*Response, error) {
	if _, ok := store.ParseKey(mc.CustomID); !ok {
		return nil, fmt.Errorf("unexpected modal custom id %q", mc.CustomID)
	}

	pending, err := w.state.Pending().Consume(ctx, mc.CustomID)
	if errors.Is(err, store.ErrNotFound) {
		return ephemeral(expiredMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume pending sanction: %w", err)
	}

	policy, err := w.state.Store().GuildPolicy(ctx, mc.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild policy: %w", err)
	}

	reason := strings.TrimSpace(mc.Reason)
	if policy.EnforceReason && reason == "" {
		return ephemeral("❌ A reason is required on this server. Please run the command again."), nil
	}

	req := &model.SanctionRequest{
		Kind:           pending.Kind,
		GuildID:        mc.GuildID,
		TargetID:       pending.TargetID,
		TargetUsername: pending.TargetUsername,
		AuthorID:       mc.User.ID,
		AuthorUsername: mc.User.Username,
		Reason:         reason,
		Notes:          strings.TrimSpace(mc.Notes),
		IssuedAt:       time.Now(),
	}
	return w.enforce(ctx, req, policy), nil
}

// enforce dispatches the platform action, writes the audit entry and fires
// the notifications. The audit entry is written whenever enforcement
// succeeded; notification failures are logged and never roll anything back.
func (w *Workflow) enforce(ctx context.Context, req *model.SanctionRequest, policy model.GuildPolicy) *Response {
	if err := w.state.Enforcer().Apply(ctx, req); err != nil {
		log.Printf("Failed to enforce %s on %s in guild %s: %v", req.Kind, req.TargetID, req.GuildID, err)
		return enforcementFailedMessage(req)
	}

	if err := w.state.Store().AddModlogEntry(ctx, model.NewModlogEntry(req)); err != nil {
		log.Printf("Failed to write modlog entry for %s on %s in guild %s: %v", req.Kind, req.TargetID, req.GuildID, err)
	}

	history, err := w.state.Store().ModlogEntriesForUser(ctx, req.GuildID, req.TargetID)
	if err != nil {
		log.Printf("Failed to load modlog history for %s in guild %s: %v", req.TargetID, req.GuildID, err)
	}

	notifier := w.state.Notifier()
	if err := notifier.NotifyTarget(ctx, req); err != nil {
		log.Printf("Failed to notify target %s: %v", req.TargetID, err)
	}
	if err := notifier.NotifyLogChannel(ctx, req, policy, history); err != nil {
		log.Printf("Failed to notify log channel for guild %s: %v", req.GuildID, err)
	}
	if err := notifier.NotifyAuthor(ctx, req); err != nil {
		log.Printf("Failed to notify author %s: %v", req.AuthorID, err)
	}

	return confirmationMessage(req)
}
