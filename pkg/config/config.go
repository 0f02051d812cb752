package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Room   RoomConfig
}

type ServerConfig struct {
	Address string
}

// RoomConfig 集中管理房間生命週期相關的時間參數
type RoomConfig struct {
	NoGuestTimeout time.Duration // 建立後無人加入的自動刪除時限
	GracePeriod    time.Duration // 遊戲中斷線後等待重連的寬限期
	AutoStartDelay time.Duration // guest 加入後自動開始遊戲的延遲
	SweepInterval  time.Duration // 過期房間清掃的執行間隔
	MaxRoomAge     time.Duration // 房間存活時間上限，超過即強制清除
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults 設定與線上行為一致的預設值，設定檔只需覆寫想調整的項目
func setDefaults() {
	viper.SetDefault("server.address", ":3000")
	viper.SetDefault("room.noguesttimeout", "60s")
	viper.SetDefault("room.graceperiod", "15s")
	viper.SetDefault("room.autostartdelay", "1500ms")
	viper.SetDefault("room.sweepinterval", "30m")
	viper.SetDefault("room.maxroomage", "2h")
}
