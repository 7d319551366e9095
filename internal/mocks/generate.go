package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/user --output domain/user --outpkg usermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/athlete --output domain/athlete --outpkg athletemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PendingRepository --dir ../domain/finance --output domain/finance --outpkg financemock --filename pending_repository_mock.go
