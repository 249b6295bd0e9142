package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "meetup.title", "Encontro de Jogo: %s %s")
	message.SetString(lang, "meetup.description", "%s criou este encontro de jogo.")
	message.SetString(lang, "meetup.count", "%d/%d")
	message.SetString(lang, "meetup.count_full", "%d/%d (lotado)")
	message.SetString(lang, "meetup.field.participants", "Participantes")
	message.SetString(lang, "meetup.field.creator", "Criador")
	message.SetString(lang, "meetup.field.date", "Data")
	message.SetString(lang, "meetup.field.list", "Lista de participantes")
	message.SetString(lang, "meetup.joined", "confirmado")
	message.SetString(lang, "meetup.maybe", "talvez")
	message.SetString(lang, "meetup.owner.body", "Você criou este encontro de jogo, pode cancelá-lo clicando no botão abaixo.")
	message.SetString(lang, "meetup.participant.body", "Você entrou em um encontro de jogo, compareça ou cancele.")
	message.SetString(lang, "meetup.maybe.body", "Você talvez participe de um encontro de jogo, confirme ou cancele.")
	message.SetString(lang, "meetup.reminder.title", "Lembrete de Encontro de Jogo")
	message.SetString(lang, "meetup.reminder.body", "O jogo de %s começa em %d minutos.")
	message.SetString(lang, "meetup.started.title", "Encontro de Jogo Iniciado")
	message.SetString(lang, "meetup.started.body", "O jogo de %s está começando.")
	message.SetString(lang, "meetup.absent.title", "Ausente do Encontro de Jogo")
	message.SetString(lang, "meetup.absent.body", "Você está ausente do encontro de jogo de %s, entre ou cancele.")
	message.SetString(lang, "meetup.stillroom.body", "Você ainda pode entrar no encontro de jogo de %s. Restam %d vagas.")
	message.SetString(lang, "meetup.cancelled.content", "Cancelado")
	message.SetString(lang, "meetup.cancelled.title", "Encontro de Jogo Cancelado")
	message.SetString(lang, "meetup.cancelled.body", "O encontro de jogo de %s foi cancelado por %s.")
	message.SetString(lang, "meetup.over.title", "Encontro de Jogo Encerrado")
	message.SetString(lang, "meetup.over.body", "O jogo de %s terminou. Os participantes foram: %s.")
	message.SetString(lang, "meetup.withdrawn.body", "Você cancelou sua participação.")
}
