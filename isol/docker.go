// Docker-Based Engine Isolation
//
// Copyright (c) 2024, 2025  The go-combat authors
//
// This file is part of go-combat.
//
// go-combat is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-combat is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-combat. If not, see
// <http://www.gnu.org/licenses/>

package isol

import (
	"context"
	"fmt"
	"io"
	"time"

	cmd "go-combat/cmd"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

type docker struct {
	image string
	id    string
	cont  *client.Client
	att   types.HijackedResponse
}

// MakeDocker launches the engine inside a container built from
// IMAGE, with its standard streams attached.  The container is
// resource-limited and removed when it dies.
func MakeDocker(image string) Launcher {
	return &docker{image: image}
}

func (d *docker) String() string {
	return "container " + d.image
}

// attached adapts the hijacked container streams.
type attached struct {
	resp types.HijackedResponse
}

func (a *attached) Read(p []byte) (int, error)  { return a.resp.Reader.Read(p) }
func (a *attached) Write(p []byte) (int, error) { return a.resp.Conn.Write(p) }
func (a *attached) Close() error {
	a.resp.Close()
	return nil
}

func (d *docker) Start(st *cmd.State, conf *cmd.Conf) (io.ReadWriteCloser, error) {
	var err error
	d.cont, err = client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		return nil, err
	}

	// The library is a thin wrapper around a HTTP API; for the
	// meaning of this configuration see
	// https://docs.docker.com/engine/api/v1.41/#operation/ContainerCreate
	ctx := context.Background()
	resp, err := d.cont.ContainerCreate(ctx, &container.Config{
		Image:       d.image,
		Tty:         true,
		OpenStdin:   true,
		StdinOnce:   true,
		AttachStdin: true,
	}, &container.HostConfig{
		Resources: container.Resources{
			CPUCount: 1,
			Memory:   1024 * 1024 * 1024,
		},
		ReadonlyRootfs: true,
		AutoRemove:     true,
	}, nil, nil, fmt.Sprintf("%s-%d", d.image, time.Now().UnixNano()))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create container %s", d.image)
	}
	d.id = resp.ID

	d.att, err = d.cont.ContainerAttach(ctx, d.id, types.ContainerAttachOptions{
		Stream: true,
		Stdin:  true,
		Stdout: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to attach to container %s", d.image)
	}

	if err := d.cont.ContainerStart(ctx, d.id, types.ContainerStartOptions{}); err != nil {
		d.att.Close()
		return nil, errors.Wrapf(err, "Failed to start container %s", d.image)
	}

	return &attached{resp: d.att}, nil
}

func (d *docker) Shutdown() error {
	if d.cont == nil || d.id == "" {
		return nil
	}
	ctx := context.Background()
	err := d.cont.ContainerKill(ctx, d.id, "SIGKILL")
	if err != nil {
		return errors.Wrapf(err, "Failed to kill container %s", d.image)
	}
	return nil
}

// Check if both launchers satisfy the interface
var (
	_ Launcher = &docker{}
	_ Launcher = &process{}
)
