package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a new courier.
// Carries the courier's transport type, served regions and working hours,
// already parsed into domain values by the caller.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.CourierID
	transport    kernel.TransportType
	regions      []kernel.RegionID
	workingHours []kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// The transport type must be valid; regions and working hours may be
// empty, such a courier simply never receives assignments.
func NewCreateCourierCommand(
	courierID kernel.CourierID,
	transport kernel.TransportType,
	regions []kernel.RegionID,
	workingHours []kernel.TimeWindow,
) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTransport(transport),
		command.setRegions(regions),
		command.setWorkingHours(workingHours),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the courier identifier from the command.
func (c CreateCourierCommand) CourierID() kernel.CourierID {
	return c.courierID
}

// Transport returns the courier transport type from the command.
func (c CreateCourierCommand) Transport() kernel.TransportType {
	return c.transport
}

// Regions returns the served region identifiers from the command.
func (c CreateCourierCommand) Regions() []kernel.RegionID {
	return c.regions
}

// WorkingHours returns the working windows from the command.
func (c CreateCourierCommand) WorkingHours() []kernel.TimeWindow {
	return c.workingHours
}

func (c *CreateCourierCommand) setTransport(transport kernel.TransportType) error {
	if err := transport.Validate(); err != nil {
		return err
	}

	c.transport = transport
	return nil
}

func (c *CreateCourierCommand) setRegions(regions []kernel.RegionID) error {
	c.regions = regions
	return nil
}

func (c *CreateCourierCommand) setWorkingHours(workingHours []kernel.TimeWindow) error {
	for _, window := range workingHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}

	c.workingHours = workingHours
	return nil
}
