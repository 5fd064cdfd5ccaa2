package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Demo 示範程式的設定
type Demo struct {
	// Count 插入的隨機 key 數量
	Count int `yaml:"count"`
	// KeyRange key 的範圍 [0, KeyRange)
	KeyRange int64 `yaml:"keyRange"`
	// Seed 隨機種子，0 表示以當下時間為準
	Seed int64 `yaml:"seed"`
	// ProbeEvery 每隔幾個 key 做一次 search/remove/search 驗證
	ProbeEvery int `yaml:"probeEvery"`
}

func DefaultDemo() Demo {
	return Demo{
		Count:      10,
		KeyRange:   200,
		Seed:       0,
		ProbeEvery: 3,
	}
}

// Gen workload 產生器的設定
type Gen struct {
	// N 鍵值數量
	N int `yaml:"n"`
	// A, B Zipf 參數，A 為 0 時改用平均分布
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	// Ops 每個檔案的操作筆數
	Ops int `yaml:"ops"`
	// Seed 隨機種子，每個檔案遞增
	Seed int64 `yaml:"seed"`
	// Files 要產生的檔案數量
	Files int `yaml:"files"`
	// OutDir 輸出目錄
	OutDir string `yaml:"outDir"`
	// DeleteRatio 已出現過的 key 產生 Delete 的機率
	DeleteRatio float64 `yaml:"deleteRatio"`
}

func DefaultGen() Gen {
	return Gen{
		N:           1000,
		A:           1.07,
		B:           0.0,
		Ops:         100000,
		Seed:        42,
		Files:       1,
		OutDir:      "workloads",
		DeleteRatio: 0.05,
	}
}

// LoadDemo 讀取 YAML 設定檔，未設定的欄位沿用預設值
func LoadDemo(path string) (Demo, error) {
	cfg := DefaultDemo()
	if err := loadYAML(path, &cfg); err != nil {
		return Demo{}, err
	}
	return cfg, nil
}

// LoadGen 讀取 YAML 設定檔，未設定的欄位沿用預設值
func LoadGen(path string) (Gen, error) {
	cfg := DefaultGen()
	if err := loadYAML(path, &cfg); err != nil {
		return Gen{}, err
	}
	return cfg, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}
