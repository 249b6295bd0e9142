package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "meetup.title", "Game Meetup: %s %s")
	message.SetString(lang, "meetup.description", "%s created this game meetup.")
	message.SetString(lang, "meetup.count", "%d/%d")
	message.SetString(lang, "meetup.count_full", "%d/%d (full)")
	message.SetString(lang, "meetup.field.participants", "Participants")
	message.SetString(lang, "meetup.field.creator", "Creator")
	message.SetString(lang, "meetup.field.date", "Date")
	message.SetString(lang, "meetup.field.list", "Participants list")
	message.SetString(lang, "meetup.joined", "joined")
	message.SetString(lang, "meetup.maybe", "maybe")
	message.SetString(lang, "meetup.owner.body", "You created this game meetup, you can cancel it by clicking the button below.")
	message.SetString(lang, "meetup.participant.body", "You joined a game meetup, please be present or cancel.")
	message.SetString(lang, "meetup.maybe.body", "You are maybe participating in a game meetup, confirm or cancel.")
	message.SetString(lang, "meetup.reminder.title", "Game Meetup Reminder")
	message.SetString(lang, "meetup.reminder.body", "The game of %s is starting in %d minutes.")
	message.SetString(lang, "meetup.started.title", "Game Meetup Started")
	message.SetString(lang, "meetup.started.body", "The game of %s is starting.")
	message.SetString(lang, "meetup.absent.title", "Absent from Game Meetup")
	message.SetString(lang, "meetup.absent.body", "You are absent from the game meetup for %s, please join or cancel.")
	message.SetString(lang, "meetup.stillroom.body", "You can still join the game meetup for %s. There are %d seats left.")
	message.SetString(lang, "meetup.cancelled.content", "Cancelled")
	message.SetString(lang, "meetup.cancelled.title", "Game Meetup Cancelled")
	message.SetString(lang, "meetup.cancelled.body", "The game meetup for %s was cancelled by %s.")
	message.SetString(lang, "meetup.over.title", "Game Meetup Over")
	message.SetString(lang, "meetup.over.body", "The game of %s is over. The participants were: %s.")
	message.SetString(lang, "meetup.withdrawn.body", "You cancelled your participation.")
}
