package probe

import "context"

// RemoteTools is the production RemoteAccessSource, shelling out to the
// TeamViewer and AnyDesk command line clients.
type RemoteTools struct{}

func NewRemoteTools() *RemoteTools {
	return &RemoteTools{}
}

func (r *RemoteTools) TeamViewerInfo(ctx context.Context) (string, error) {
	return run(ctx, "teamviewer", "info")
}

func (r *RemoteTools) AnydeskID(ctx context.Context) (string, error) {
	out, err := run(ctx, "anydesk", "--get-id")
	if err != nil {
		return "", err
	}

	return ParseAnydeskID(out), nil
}
