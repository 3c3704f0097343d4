package report

import (
	"context"

	"zbxreport/internal/zabbix"
)

// API is the part of the Zabbix client the collector consumes
type API interface {
	HostByName(ctx context.Context, name string) (*zabbix.Host, error)
	EnabledItems(ctx context.Context, hostID string) ([]zabbix.Item, error)
	ItemByKey(ctx context.Context, hostID, key string) (*zabbix.Item, error)
	History(ctx context.Context, itemID string, historyType int, timeFrom, timeTill int64) ([]zabbix.HistoryValue, error)
}
