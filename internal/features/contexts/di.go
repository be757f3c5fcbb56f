package contexts

import (
	"extlog/internal/config"
)

var contextService = NewContextService(config.GetEnv().SecretKey, DefaultTokenTTL)

var contextController = &ContextController{
	contextService,
}

func GetContextService() *ContextService {
	return contextService
}

func GetContextController() *ContextController {
	return contextController
}
