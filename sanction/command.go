package sanction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/model"
)

// command is the parsed payload of a sanction command: the kind, the target
// user, the target's member record when they are in the guild, and the
// optional inline reason.
type command struct {
	kind   model.SanctionKind
	target *discordgo.User
	member *discordgo.Member
	reason string
}

func parseCommand(cc *model.CommandContext) (*command, error) {
	kind := model.SanctionKind(cc.Data.Name)
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown sanction command %q", cc.Data.Name)
	}

	cmd := &command{kind: kind}
	for _, opt := range cc.Data.Options {
		switch opt.Name {
		case "member":
			id, _ := opt.Value.(string)
			if cc.Data.Resolved != nil {
				cmd.target = cc.Data.Resolved.Users[id]
				cmd.member = cc.Data.Resolved.Members[id]
			}
		case "reason":
			cmd.reason = strings.TrimSpace(opt.StringValue())
		}
	}
	if cmd.target == nil {
		return nil, errors.New("sanction command is missing its member option")
	}
	return cmd, nil
}
