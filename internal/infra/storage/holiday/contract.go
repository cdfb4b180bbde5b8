package holiday

import (
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
