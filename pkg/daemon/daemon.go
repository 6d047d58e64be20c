package daemon

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Initializer is initialized before services are started. Returning
// an error will cancel the start of daemon services.
type Initializer interface {
	InitializeDaemon() error
}

// Terminator is terminated when the daemon gets a stop signal.
type Terminator interface {
	TerminateDaemon() error
}

// Service is run after the daemon is initialized.
type Service interface {
	Serve(ctx context.Context)
}

// Daemon is a top-level daemon lifecycle manager that runs services given to it.
type Daemon struct {
	Initializers []Initializer
	Services     []Service
	Terminators  []Terminator
	Context      context.Context
	state        int32
	cancel       context.CancelFunc
	errs         chan []error
}

// New builds a daemon configured to run a set of services. Each service is
// also registered as an Initializer and Terminator when it implements them,
// in the order given.
func New(services ...Service) *Daemon {
	d := &Daemon{}
	for _, s := range services {
		d.Add(s)
	}
	return d
}

// Add registers v under every lifecycle interface it implements.
func (d *Daemon) Add(v interface{}) {
	if i, ok := v.(Initializer); ok {
		d.Initializers = append(d.Initializers, i)
	}
	if s, ok := v.(Service); ok {
		d.Services = append(d.Services, s)
	}
	if t, ok := v.(Terminator); ok {
		d.Terminators = append(d.Terminators, t)
	}
}

// Run creates a daemon from services and runs it with a background context
func Run(services ...Service) error {
	d := New(services...)
	return d.Run(context.Background())
}

// Run executes the daemon lifecycle
func (d *Daemon) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&d.state, 0, 1) {
		return errors.New("already running")
	}

	// call initializers
	for _, i := range d.Initializers {
		if err := i.InitializeDaemon(); err != nil {
			atomic.StoreInt32(&d.state, 0)
			return err
		}
	}

	// finish if no services
	if len(d.Services) == 0 {
		atomic.StoreInt32(&d.state, 0)
		return errors.New("no services to run")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancelFunc := context.WithCancel(ctx)
	d.Context = ctx
	d.cancel = cancelFunc
	// buffered so Terminate can be called from inside a service
	d.errs = make(chan []error, 1)

	// setup terminators on stop signals
	go TerminateOnSignal(d)
	go TerminateOnContextDone(d)

	var wg sync.WaitGroup
	for _, service := range d.Services {
		wg.Add(1)
		go func(s Service) {
			s.Serve(d.Context)
			wg.Done()
		}(service)
	}
	wg.Wait()
	d.Terminate()
	errs := <-d.errs
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Terminate cancels the daemon context and calls Terminators in reverse order
func (d *Daemon) Terminate() {
	if d == nil {
		return
	}

	if !atomic.CompareAndSwapInt32(&d.state, 1, 0) {
		return
	}

	if d.cancel != nil {
		d.cancel()
	}
	var errs []error
	for i := len(d.Terminators) - 1; i >= 0; i-- {
		if err := d.Terminators[i].TerminateDaemon(); err != nil {
			errs = append(errs, err)
		}
	}
	d.errs <- errs
}

// TerminateOnSignal waits for SIGINT or SIGHUP to terminate the daemon.
func TerminateOnSignal(d *Daemon) {
	termSigs := make(chan os.Signal, 1)
	signal.Notify(termSigs, os.Interrupt, syscall.SIGHUP)
	defer signal.Stop(termSigs)
	select {
	case <-termSigs:
		d.Terminate()
	case <-d.Context.Done():
	}
}

// TerminateOnContextDone waits for the daemon's context to be canceled.
func TerminateOnContextDone(d *Daemon) {
	<-d.Context.Done()
	d.Terminate()
}
