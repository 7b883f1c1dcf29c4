package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mjx/common/config"
	"mjx/common/log"
	"mjx/common/metrics"
	"mjx/simulator/app"
)

var (
	configFile string
	logLevel   string
	games      int
	parallel   int
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "立直麻将批量模拟",
	Long:  `按配置的规则和 agent 并行跑多场对局，输出名次统计`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig(configFile)
		conf := *config.Current()
		if cmd.Flags().Changed("logLevel") {
			conf.Log.Level = logLevel
		}
		if cmd.Flags().Changed("games") {
			conf.Runner.Games = games
		}
		if cmd.Flags().Changed("parallel") {
			conf.Runner.Parallel = parallel
		}
		if cmd.Flags().Changed("seed") {
			conf.Runner.Seed = seed
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		log.Debug("配置文件: %+v", conf)

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		summary, err := app.Run(context.Background(), &conf)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "配置文件，为空时只使用默认值与环境变量")
	rootCmd.Flags().StringVar(&logLevel, "logLevel", "info", "日志级别")
	rootCmd.Flags().IntVar(&games, "games", 100, "对局数")
	rootCmd.Flags().IntVar(&parallel, "parallel", 4, "并行对局数")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "模拟种子")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("发生异常: %v", err)
		os.Exit(1)
	}
}
