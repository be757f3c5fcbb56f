package downdetect

import (
	"extlog/internal/features/kvstore"
)

var downdetectService = NewDowndetectService(kvstore.GetStore())

var downdetectController = &DowndetectController{
	downdetectService,
}

func GetDowndetectService() *DowndetectService {
	return downdetectService
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
