package bot

import (
	tg "nationbot/core/telegram"
	"nationbot/core/telegram/commands"
)

// Register binds the service's handlers to the command and callback registry.
func Register(reg *tg.Registry, svc *Service) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     svc.HandleStart,
		Description: "Начать работу с ботом",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     svc.HandleStart,
		Description: "Как пользоваться ботом",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     svc.HandleStats,
		Description: "Служебная статистика",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(svc.HandleName)

	return reg.RegisterCallback(GraphCallbackKey, svc.HandleGraph)
}
