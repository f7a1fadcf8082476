package keystone

import (
	"context"

	"go.uber.org/zap"

	"wallet-keystone/internal/notify"
	"wallet-keystone/pkg/monitor"
)

// ShowConnectModal 显示连接说明弹窗，配对前需要先给用户看操作步骤
func (s *Service) ShowConnectModal(ctx context.Context) error {
	_, err := s.showConnect.Dispatch(ctx, s.store, struct{}{})
	return err
}

func (s *Service) runShowConnectModal(_ context.Context, _ struct{}) (struct{}, error) {
	s.store.Dispatch(SetConnectionModalType(ConnectModalConnect))
	return struct{}{}, nil
}

// Connect 与签名设备配对。失败时弹窗切到 connection-error，available 保持原值，错误原样返回。
func (s *Service) Connect(ctx context.Context) error {
	if err := s.ShowConnectModal(ctx); err != nil {
		return err
	}
	_, err := s.connect.Dispatch(ctx, s.store, struct{}{})
	return err
}

func (s *Service) runConnect(ctx context.Context, _ struct{}) (struct{}, error) {
	if err := s.device.Initialize(ctx, s.onDeviceDisconnect); err != nil {
		s.store.Dispatch(SetConnectionModalType(ConnectModalError))
		monitor.ObserveDeviceConnection("connect_error")
		return struct{}{}, err
	}

	s.store.Dispatch(SetConnectionStatus(s.device.Available()))
	s.showAlert(ctx, notify.Alert{
		Success:           true,
		MessageCodeHeader: "connectKeystone.keystoneConnected",
		MessageCode:       "connectKeystone.youMayNow",
	})
	s.store.Dispatch(SetConnectionModalType(ConnectModalNone))
	monitor.ObserveDeviceConnection("connected")
	return struct{}{}, nil
}

// Disconnect 标记设备已断开并提示用户。重复调用只会重复提示。
func (s *Service) Disconnect(ctx context.Context) error {
	_, err := s.disconnect.Dispatch(ctx, s.store, struct{}{})
	return err
}

func (s *Service) runDisconnect(ctx context.Context, _ struct{}) (struct{}, error) {
	s.store.Dispatch(SetDisconnected())
	s.showAlert(ctx, notify.Alert{
		Success:           false,
		MessageCodeHeader: "warning",
		MessageCode:       "errors.keystone.disconnected",
	})
	monitor.ObserveDeviceConnection("disconnected")
	return struct{}{}, nil
}

// onDeviceDisconnect 设备驱动的断开回调，可能在驱动自己的 goroutine 中调用
func (s *Service) onDeviceDisconnect() {
	s.log.Warn("keystone device disconnected")
	_ = s.Disconnect(context.Background())
}

func (s *Service) showAlert(ctx context.Context, a notify.Alert) {
	if err := s.alerts.ShowAlert(ctx, a); err != nil {
		s.log.Warn("show alert failed", zap.String("code", a.MessageCode), zap.Error(err))
	}
}
