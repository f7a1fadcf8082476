package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wallet-keystone/internal/bootstrap"
	"wallet-keystone/internal/service/mq"
	"wallet-keystone/pkg/config"
)

var eventsGroup string

// eventsCmd 打印提示和账户事件，Ctrl+C 退出
var eventsCmd = &cobra.Command{
	Use:       "events [alert|accounts]",
	Short:     "订阅消息队列中的事件",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"alert", "accounts"},
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := mq.TopicAccounts
		if len(args) == 1 && args[0] == "alert" {
			topic = mq.TopicAlert
		}

		group := eventsGroup
		if group == "" {
			group = config.Global.Kafka.GroupID
		}
		hostname, _ := os.Hostname()
		consumer, err := bootstrap.NewConsumer(config.Global, components.Redis, group, hostname)
		if err != nil {
			return err
		}
		defer consumer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return consumer.Subscribe(ctx, topic, func(msg *mq.Message) error {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\n", msg.Topic, msg.Key, string(msg.Payload))
			return nil
		})
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsGroup, "group", "", "消费者组 (默认 kafka.group_id)")
	rootCmd.AddCommand(eventsCmd)
}
