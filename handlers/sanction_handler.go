package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"sentinel-bot/bot"
	"sentinel-bot/model"
	"sentinel-bot/permission"
	"sentinel-bot/sanction"
	"sentinel-bot/utils"
)

// HandleSanctionCommand adapts a kick/ban/mute/warn command interaction to
// the sanction workflow and renders its response. When an inline reason was
// supplied the command is deferred first, since enforcement makes REST calls;
// without one the first response may have to be the reason modal, which
// cannot follow a deferral.
func HandleSanctionCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cc, err := model.NewCommandContext(i.Interaction)
	if err != nil {
		log.Printf("Rejected %s command: %v", i.ApplicationCommandData().Name, err)
		utils.SendErrorResponse(s, i, "Could not read this command. Please try again.")
		return
	}

	deferred := hasInlineReason(cc)
	if deferred {
		if err := utils.DeferResponse(s, i, true); err != nil {
			log.Printf("Failed to defer interaction: %v", err)
			return
		}
	}

	resp, err := b.Workflow().HandleCommand(context.Background(), cc)
	if err != nil {
		log.Printf("Sanction command %s failed: %v", cc.ID, err)
		msg := "Something went wrong. Please try again."
		if errors.Is(err, permission.ErrActorResolution) {
			msg = "Member data is not available yet. Please try again in a moment."
		}
		if deferred {
			utils.SendFollowUpError(s, i.Interaction, msg)
		} else {
			utils.SendErrorResponse(s, i, msg)
		}
		return
	}
	renderResponse(s, i, resp, deferred)
}

// HandleSanctionModalSubmit resumes a pending sanction from its reason
// modal.
func HandleSanctionModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	mc, err := model.NewModalContext(i.Interaction)
	if err != nil {
		log.Printf("Rejected modal submission: %v", err)
		utils.SendErrorResponse(s, i, "Could not read this submission. Please try again.")
		return
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer modal submission: %v", err)
		return
	}

	resp, err := b.Workflow().HandleModalSubmit(context.Background(), mc)
	if err != nil {
		log.Printf("Sanction modal %s failed: %v", mc.CustomID, err)
		utils.SendFollowUpError(s, i.Interaction, "Something went wrong. Please try again.")
		return
	}
	renderResponse(s, i, resp, true)
}

func hasInlineReason(cc *model.CommandContext) bool {
	for _, opt := range cc.Data.Options {
		if opt.Name == "reason" && opt.StringValue() != "" {
			return true
		}
	}
	return false
}

func renderResponse(s *discordgo.Session, i *discordgo.InteractionCreate, resp *sanction.Response, deferred bool) {
	switch resp.Kind {
	case sanction.ResponseModal:
		respondModal(s, i, resp.Modal)
	case sanction.ResponseMessage:
		if deferred {
			utils.SendFollowUp(s, i.Interaction, resp.Content)
		} else if resp.Ephemeral {
			utils.SendSimpleResponse(s, i, resp.Content)
		} else {
			utils.SendPublicResponse(s, i, resp.Content)
		}
	}
}

func respondModal(s *discordgo.Session, i *discordgo.InteractionCreate, prompt *sanction.ModalPrompt) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: prompt.CustomID,
			Title:    prompt.Title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "reason",
						Label:       "Reason",
						Style:       discordgo.TextInputShort,
						Placeholder: "Why is this sanction being applied?",
						Required:    prompt.RequireReason,
						MaxLength:   100,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "notes",
						Label:     "Notes (kept in the modlog only)",
						Style:     discordgo.TextInputParagraph,
						Required:  false,
						MaxLength: 1000,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("Failed to present reason modal %s: %v", prompt.CustomID, err)
	}
}
