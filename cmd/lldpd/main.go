package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	lldpd "github.com/extrame/lldpagent"
)

func main() {
	// glog flags are parsed by cobra
	_ = flag.CommandLine.Parse(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmdRoot().ExecuteContext(ctx)
	stop()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func cmdRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "lldpd",
		Short:        "LLDP agent",
		Long:         "Announces this host with LLDP and logs the neighbors it hears.",
		SilenceUsage: true,
	}
	cobra.EnableCommandSorting = false
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(cmdRun(), cmdInterfaces(), cmdReplay())
	return root
}

type runFlags struct {
	config   string
	interval time.Duration
	ttl      uint16
	once     bool
	strict   bool
	logrus   bool
}

func cmdRun() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [interface]",
		Short: "Announce on an interface and log neighbors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := lldpd.DefaultConfig()
			if f.config != "" {
				var err error
				if c, err = lldpd.LoadConfig(f.config); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				c.Interface = args[0]
			}
			if cmd.Flags().Changed("interval") {
				c.Interval = f.interval.Seconds()
			}
			if cmd.Flags().Changed("ttl") {
				c.TTL = f.ttl
			}
			if f.strict {
				c.Strict = true
			}
			return run(cmd.Context(), c, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "YAML configuration file")
	cmd.Flags().DurationVar(&f.interval, "interval", lldpd.DefaultInterval, "time between announces")
	cmd.Flags().Uint16Var(&f.ttl, "ttl", lldpd.DefaultTTL, "time to live of announces, in seconds")
	cmd.Flags().BoolVar(&f.once, "once", false, "exit after the first neighbor LLDPDU")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "exit on the first undecodable LLDPDU")
	cmd.Flags().BoolVar(&f.logrus, "logrus", false, "log neighbors through logrus instead of plain lines")
	return cmd
}

func run(ctx context.Context, c *lldpd.Config, f runFlags) error {
	ifi, err := lldpd.InterfaceByName(c.Interface)
	if err != nil {
		return err
	}
	if len(ifi.HardwareAddr) == 0 {
		return errors.Errorf("interface %s does not have a MAC address", ifi.Name)
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if f.logrus {
		opts = append(opts, lldpd.WithLogger(lldpd.NewLogrusLogger(logrus.StandardLogger(), ifi.Name)))
	}

	tr, err := lldpd.ListenRaw(ifi.Name)
	if err != nil {
		return err
	}
	defer tr.Close()

	agent, err := lldpd.New(ifi.HardwareAddr, ifi.Name, tr, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("Starting LLDP Agent on interface %s\n", ifi.Name)
	return agent.Run(ctx, f.once)
}

func cmdInterfaces() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "interfaces",
		Short: "List the Ethernet interfaces the agent can run on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				events, err := lldpd.WatchInterfaces(cmd.Context())
				if err != nil {
					return err
				}
				for ev := range events {
					fmt.Printf("%s\t%s\t%s\n", ev.Op, ev.Interface.Name, ev.Interface.HardwareAddr)
				}
				return nil
			}
			ifis, err := lldpd.Interfaces()
			if err != nil {
				return err
			}
			for _, ifi := range ifis {
				fmt.Printf("%s\t%s\n", ifi.Name, ifi.HardwareAddr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep reporting interfaces as they come and go")
	return cmd
}

func cmdReplay() *cobra.Command {
	var (
		out    string
		mac    string
		ifname string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "replay <capture.pcap>",
		Short: "Log the neighbors found in a pcap capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hw, err := net.ParseMAC(mac)
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			var w *os.File
			if out != "" {
				if w, err = os.Create(out); err != nil {
					return err
				}
				defer w.Close()
			}
			tr, err := newPcapTransport(in, w)
			if err != nil {
				return err
			}

			var opts []lldpd.Option
			if strict {
				opts = append(opts, lldpd.Strict())
			}
			agent, err := lldpd.New(hw, ifname, tr, opts...)
			if err != nil {
				return err
			}
			if err := agent.Announce(); err != nil {
				return err
			}
			return agent.Run(cmd.Context(), false)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the agent's announces to this pcap file")
	cmd.Flags().StringVar(&mac, "mac", "02:00:00:00:00:01", "local MAC address; frames from it are ignored")
	cmd.Flags().StringVar(&ifname, "interface", "replay", "local interface name announced as port id")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first undecodable LLDPDU")
	return cmd
}

// newPcapTransport keeps a nil *os.File from turning into a non-nil writer.
func newPcapTransport(in *os.File, out *os.File) (*lldpd.PcapTransport, error) {
	if out == nil {
		return lldpd.NewPcapTransport(in, nil)
	}
	return lldpd.NewPcapTransport(in, out)
}
