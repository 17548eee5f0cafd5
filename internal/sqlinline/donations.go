package sqlinline

const donationColumns = `id, user_id, comment, full_amount, invested_amount, fully_invested, create_date, close_date`

const QInsertDonation = `--sql 5d2e5a11-91e2-49e5-866b-8200743844ec
insert into donation(user_id, comment, full_amount, invested_amount, fully_invested, create_date)
values ($1::text, $2::text, $3::bigint, 0, false, now())
returning id, create_date;
`

const QGetDonation = `--sql 65d3e4ff-2754-4055-b82f-1ac9099ce7b4
select ` + donationColumns + `
from donation
where id = $1::bigint;
`

const QListDonations = `--sql 2ac32ae2-110f-46c4-ba90-62f71305735b
select ` + donationColumns + `
from donation
order by create_date asc, id asc;
`

const QListDonationsByUser = `--sql 47d2cec4-24cd-40ba-b8de-ac5d6b85b93c
select ` + donationColumns + `
from donation
where user_id = $1::text
order by create_date asc, id asc;
`

const QListOpenDonations = `--sql ba12324a-8d20-4364-9f8a-5d6ddc4c905f
select ` + donationColumns + `
from donation
where fully_invested = false
order by create_date asc, id asc;
`

const QCommitDonation = `--sql ce7e23bd-e973-4e57-8043-68ef87727aa0
update donation
set invested_amount = $2::bigint,
    fully_invested = $3::boolean,
    close_date = $4::timestamptz
where id = $1::bigint
  and fully_invested = false
  and invested_amount = $5::bigint
  and full_amount = $6::bigint;
`
