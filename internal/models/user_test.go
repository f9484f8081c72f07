package models

import "testing"

func TestUser_PasswordHashedOnlyWhenSet(t *testing.T) {
	u := &User{Email: "bs@email.com"}
	u.SetPassword("bs.password")

	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "" || u.Password == "bs.password" {
		t.Fatalf("password not hashed: %q", u.Password)
	}

	hash := u.Password
	if err := u.HashPassword(); err != nil {
		t.Fatalf("second HashPassword: %v", err)
	}
	if u.Password != hash {
		t.Error("stored hash must not be re-hashed without a new password")
	}
}

func TestUser_CheckPassword(t *testing.T) {
	u := &User{}
	u.SetPassword("right")
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := u.CheckPassword("right")
	if err != nil || !ok {
		t.Errorf("right password: ok=%v err=%v", ok, err)
	}
	ok, err = u.CheckPassword("wrong")
	if err != nil || ok {
		t.Errorf("wrong password: ok=%v err=%v", ok, err)
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleClient, RoleOwner, RoleCourier} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Role("Admin").Valid() {
		t.Error("Admin should not be valid")
	}
}

func TestDish_ExtraFor(t *testing.T) {
	five, two := 5, 2
	d := &Dish{Options: []DishOption{
		{Name: "Spice Level", Choices: []DishChoice{{Name: "Hot", Extra: &two}, {Name: "Mild"}}},
		{Name: "Pickle", Extra: &five},
	}}

	hot, mild := "Hot", "Mild"
	if got := d.ExtraFor("Pickle", nil); got != 5 {
		t.Errorf("flat extra: want 5, got %d", got)
	}
	if got := d.ExtraFor("Spice Level", &hot); got != 2 {
		t.Errorf("choice extra: want 2, got %d", got)
	}
	if got := d.ExtraFor("Spice Level", &mild); got != 0 {
		t.Errorf("free choice: want 0, got %d", got)
	}
	if got := d.ExtraFor("Unknown", nil); got != 0 {
		t.Errorf("unknown option: want 0, got %d", got)
	}
}
