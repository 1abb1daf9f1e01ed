// Package seed демонстрационный набор данных: администратор, покупатели, каталог товаров и коробки.
package seed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/internal/service"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

type User struct {
	Username string
	Password string
	Balance  decimal.Decimal
	IsVIP    bool
	IsAdmin  bool
}

type Goods struct {
	Name      string
	ImagePath string
}

// Box Rewards номера товаров из Dataset.Goods, начиная с 1.
type Box struct {
	Name      string
	ImagePath string
	Price     decimal.Decimal
	Remaining int64
	Rewards   []int
}

type Dataset struct {
	Users []User
	Goods []Goods
	Boxes []Box
}

const demoBalance = 1000

// Default набор данных для демо стенда. Коробки "Welfare box" созданы без наград, покупка в них
// заканчивается ошибкой пустого пула.
func Default() Dataset {
	users := []User{{Username: "root", Password: "root", Balance: decimal.Zero, IsAdmin: true}}
	for i := 1; i <= 10; i++ {
		name := strconv.Itoa(i)
		users = append(users, User{
			Username: name,
			Password: name,
			Balance:  decimal.NewFromInt(demoBalance),
			IsVIP:    i >= 9,
		})
	}

	goodsNames := []string{
		"Sticker pack", "Enamel badge", "Keychain", "Postcard set", "Game skin",
		"Tote bag", "Mug", "Notebook", "Vinyl figure", "Game coins x100",
		"Game coins x500", "Rare mount", "Legendary weapon",
	}
	goods := make([]Goods, len(goodsNames))
	for i, name := range goodsNames {
		goods[i] = Goods{Name: name, ImagePath: fmt.Sprintf("/pictures/goods/%d.png", i+1)}
	}

	boxes := []Box{
		{
			Name:      "App welfare box",
			ImagePath: "/pictures/1.png",
			Price:     decimal.NewFromInt(20),
			Remaining: 1500,
			Rewards:   []int{1, 2, 3, 4, 6},
		}, {
			Name:      "Game items box",
			ImagePath: "/pictures/2.png",
			Price:     decimal.NewFromInt(88),
			Remaining: 10,
			Rewards:   []int{5, 10, 11, 12, 13},
		},
	}
	for _, picture := range []string{"1.jpg", "3.png", "4.png", "5.png", "6.png", "7.png", "8.png"} {
		boxes = append(boxes, Box{
			Name:      "Welfare box",
			ImagePath: "/pictures/" + picture,
			Price:     decimal.NewFromInt(100),
			Remaining: 3,
		})
	}

	return Dataset{Users: users, Goods: goods, Boxes: boxes}
}

// Load записывает ds в хранилище одной транзакцией. Если юзеры уже есть, ничего не делает и возвращает false.
func Load(
	ctx context.Context,
	u uow.UOW,
	hasher service.PasswordHasher,
	ds Dataset,
	l *logrus.Logger,
) (bool, error) {
	loaded := false
	err := u.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, err := uow.GetAs[service.UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		boxRepo, err := uow.GetAs[service.BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		count, err := userRepo.Count(c)
		if err != nil {
			return fmt.Errorf("counting users: %w", err)
		}
		if count > 0 {
			return nil
		}

		if err = loadUsers(c, userRepo, hasher, ds.Users); err != nil {
			return err
		}
		if err = loadBoxes(c, boxRepo, ds.Goods, ds.Boxes); err != nil {
			return err
		}
		loaded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	l.WithFields(logrus.Fields{
		"component": "seed",
		"loaded":    loaded,
		"users":     len(ds.Users),
		"boxes":     len(ds.Boxes),
	}).Info("seed finished")
	return loaded, nil
}

func loadUsers(ctx context.Context, repo service.UserRepository, hasher service.PasswordHasher, users []User) error {
	for _, user := range users {
		hash, err := hasher.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("hashing password of %s: %w", user.Username, err)
		}
		if _, err = repo.CreateUser(ctx, repoargs.CreateUser{
			Username:     user.Username,
			Password:     hash,
			Balance:      user.Balance,
			IsVIP:        user.IsVIP,
			IsAdmin:      user.IsAdmin,
			IsSuperAdmin: user.IsAdmin,
		}); err != nil {
			return fmt.Errorf("creating user %s: %w", user.Username, err)
		}
	}
	return nil
}

func loadBoxes(ctx context.Context, repo service.BoxRepository, goods []Goods, boxes []Box) error {
	goodsIDs := make([]int64, len(goods))
	for i, g := range goods {
		created, err := repo.CreateGoods(ctx, repoargs.CreateGoods{Name: g.Name, ImagePath: g.ImagePath})
		if err != nil {
			return fmt.Errorf("creating goods %s: %w", g.Name, err)
		}
		goodsIDs[i] = created.ID
	}

	for _, box := range boxes {
		created, err := repo.CreateBox(ctx, repoargs.CreateBox{
			Name:      box.Name,
			ImagePath: box.ImagePath,
			Price:     box.Price,
			Remaining: box.Remaining,
		})
		if err != nil {
			return fmt.Errorf("creating box %s: %w", box.Name, err)
		}
		for _, n := range box.Rewards {
			if n < 1 || n > len(goodsIDs) {
				return fmt.Errorf("box %s: unknown goods #%d", box.Name, n)
			}
			if err = repo.AddReward(ctx, created.ID, goodsIDs[n-1]); err != nil {
				return fmt.Errorf("adding goods #%d to box %s: %w", n, box.Name, err)
			}
		}
	}
	return nil
}
